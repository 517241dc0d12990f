package fund

import (
	"fmt"
	"math"

	"github.com/altuslabsxyz/fundctl/internal/clarity"
)

// DecodeError is returned when a single campaign record cannot be decoded.
// It never aborts a batch fetch; the offending record is dropped instead.
type DecodeError struct {
	CampaignID uint64
	Reason     string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode campaign %d: %s", e.CampaignID, e.Reason)
}

// DecodeCampaign maps a get-campaign result onto a Campaign. Fields missing
// from the tuple default to zero values; only a non-tuple result (or an empty
// optional) is an error. A record that has been withdrawn or finalized is
// never reported active, whatever the raw flag says.
func DecodeCampaign(id uint64, v *clarity.Value) (Campaign, error) {
	if v.IsNone() {
		return Campaign{}, &DecodeError{CampaignID: id, Reason: "campaign does not exist"}
	}
	inner := v.Unwrap()
	if inner == nil || inner.Type != clarity.TypeTuple {
		return Campaign{}, &DecodeError{CampaignID: id, Reason: "result is not a tuple"}
	}

	// A deadline beyond the int64 range would wrap negative and read as
	// "no deadline"; clamp it instead.
	deadline := v.UintField("deadline")
	if deadline > math.MaxInt64 {
		deadline = math.MaxInt64
	}

	c := Campaign{
		ID:          id,
		Title:       v.StringField("title"),
		Description: v.StringField("description"),
		Goal:        v.IntField("goal"),
		Raised:      v.IntField("total-raised"),
		Deadline:    int64(deadline),
		Owner:       v.StringField("owner"),
		Active:      v.BoolField("active"),
		Successful:  v.BoolField("successful"),
		Withdrawn:   v.BoolField("withdrawn"),
		Finalized:   v.BoolField("finalized"),
	}

	if c.Withdrawn || c.Finalized {
		c.Active = false
	}

	return c, nil
}

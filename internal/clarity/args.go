package clarity

import (
	"encoding/json"
	"strconv"
)

// UintValue builds a uint argument for a contract call.
func UintValue(n uint64) *Value {
	raw, _ := json.Marshal(strconv.FormatUint(n, 10))
	return &Value{Type: TypeUint, Value: raw}
}

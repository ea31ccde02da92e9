package influx

import (
	"github.com/mitchellh/mapstructure"
)

// decodeRecord maps one Flux record onto out. Columns are matched against the json tags
// of the domain types, which already use the column names the queries produce; the
// record's _time is exposed under "time". Numeric columns are weakly typed because
// aggregate and sum results arrive as float64, int64 or uint64 depending on the input.
// A missing or null cell leaves the field at its zero value.
func decodeRecord(values map[string]interface{}, out interface{}) error {
	input := make(map[string]interface{}, len(values)+1)
	for k, v := range values {
		if v != nil {
			input[k] = v
		}
	}
	if t, ok := values["_time"]; ok && t != nil {
		input["time"] = t
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		TagName:          "json",
		Result:           out,
	})
	if err != nil {
		return err
	}
	return dec.Decode(input)
}

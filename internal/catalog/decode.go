package catalog

import (
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
)

var tiersType = reflect.TypeOf(tiers{})

func decode(input, out any) error {
	cfg := &mapstructure.DecoderConfig{
		Result:           out,
		TagName:          "json",
		Squash:           true,
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			countHook,
			tiersHook,
			mapstructure.StringToTimeHookFunc(time.RFC3339),
		),
	}
	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return err
	}
	return decoder.Decode(input)
}

// countHook accepts scraped counters such as "500+" or "1,200" for integer fields.
func countHook(from, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String || to.Kind() != reflect.Int {
		return data, nil
	}

	s := strings.TrimSpace(data.(string))
	s = strings.TrimSuffix(s, "+")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		return data, nil
	}
	return n, nil
}

// tiersHook lets a tiered field be written as a plain string.
func tiersHook(from, to reflect.Type, data any) (any, error) {
	if to != tiersType || from.Kind() != reflect.String {
		return data, nil
	}
	return []map[string]any{{"value": data}}, nil
}

package playlist

import (
	"math"
	"sort"
	"strconv"

	"github.com/tidwall/gjson"
)

type valueKind int

const (
	kindNumber valueKind = iota
	kindByteCount
	kindString
	kindBool
	kindObjectArray
)

func (k valueKind) String() string {
	switch k {
	case kindNumber:
		return "number"
	case kindByteCount:
		return "non-negative integer"
	case kindString:
		return "string"
	case kindBool:
		return "boolean"
	default:
		return "array"
	}
}

type field struct {
	kind valueKind
	elem objectShape
}

// objectShape lists every key an object must carry. Objects are strict:
// missing and unexpected keys are both rejected.
type objectShape map[string]field

var segmentShape = objectShape{
	"start": {kind: kindNumber},
	"end":   {kind: kindNumber},
	"size":  {kind: kindByteCount},
	"url":   {kind: kindString},
}

var mediaFields = objectShape{
	"avg_bitrate":          {kind: kindNumber},
	"avg_id":               {kind: kindString},
	"base_url":             {kind: kindString},
	"bitrate":              {kind: kindNumber},
	"codecs":               {kind: kindString},
	"duration":             {kind: kindNumber},
	"format":               {kind: kindString},
	"id":                   {kind: kindString},
	"index_segment":        {kind: kindString},
	"init_segment":         {kind: kindString},
	"init_segment_url":     {kind: kindString},
	"max_segment_duration": {kind: kindNumber},
	"mime_type":            {kind: kindString},
	"segments":             {kind: kindObjectArray, elem: segmentShape},
}

var audioShape = extend(mediaFields, objectShape{
	"audio_primary": {kind: kindBool},
	"channels":      {kind: kindNumber},
	"sample_rate":   {kind: kindNumber},
})

var videoShape = extend(mediaFields, objectShape{
	"framerate": {kind: kindNumber},
	"height":    {kind: kindNumber},
	"width":     {kind: kindNumber},
})

var playlistShape = objectShape{
	"audio":    {kind: kindObjectArray, elem: audioShape},
	"base_url": {kind: kindString},
	"clip_id":  {kind: kindString},
	"video":    {kind: kindObjectArray, elem: videoShape},
}

func extend(base, extra objectShape) objectShape {
	out := make(objectShape, len(base)+len(extra))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}

// Validate checks that data is a JSON document matching the playlist shape
// exactly. It returns a *SchemaError naming the first offending path.
func Validate(data []byte) error {
	if !gjson.ValidBytes(data) {
		return &SchemaError{Reason: "body is not valid JSON"}
	}
	return validateObject(gjson.ParseBytes(data), "", playlistShape)
}

func validateObject(value gjson.Result, path string, shape objectShape) error {
	if !value.IsObject() {
		return &SchemaError{Path: path, Reason: "expected object"}
	}

	present := make(map[string]gjson.Result, len(shape))
	var unexpected string
	value.ForEach(func(key, val gjson.Result) bool {
		name := key.String()
		if _, ok := shape[name]; !ok {
			unexpected = name
			return false
		}
		present[name] = val
		return true
	})
	if unexpected != "" {
		return &SchemaError{Path: join(path, unexpected), Reason: "unexpected field"}
	}

	keys := make([]string, 0, len(shape))
	for key := range shape {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		want := shape[key]
		val, ok := present[key]
		fieldPath := join(path, key)
		if !ok {
			return &SchemaError{Path: fieldPath, Reason: "missing field"}
		}
		if err := validateValue(val, fieldPath, want); err != nil {
			return err
		}
	}
	return nil
}

func validateValue(val gjson.Result, path string, want field) error {
	switch want.kind {
	case kindNumber:
		if val.Type == gjson.Number {
			return nil
		}
	case kindByteCount:
		if val.Type != gjson.Number {
			break
		}
		if val.Num < 0 || val.Num != math.Trunc(val.Num) {
			return &SchemaError{Path: path, Reason: "expected " + want.kind.String() + ", got " + val.Raw}
		}
		return nil
	case kindString:
		if val.Type == gjson.String {
			return nil
		}
	case kindBool:
		if val.Type == gjson.True || val.Type == gjson.False {
			return nil
		}
	case kindObjectArray:
		if !val.IsArray() {
			break
		}
		var err error
		idx := 0
		val.ForEach(func(_, elem gjson.Result) bool {
			err = validateObject(elem, join(path, strconv.Itoa(idx)), want.elem)
			idx++
			return err == nil
		})
		return err
	}
	return &SchemaError{Path: path, Reason: "expected " + want.kind.String() + ", got " + describe(val)}
}

func describe(val gjson.Result) string {
	switch {
	case val.IsArray():
		return "array"
	case val.IsObject():
		return "object"
	}
	switch val.Type {
	case gjson.Null:
		return "null"
	case gjson.True, gjson.False:
		return "boolean"
	case gjson.Number:
		return "number"
	default:
		return "string"
	}
}

func join(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

package pipeline

import (
	"bytes"
	"mime/multipart"
	"net/url"
	"sort"

	"treki/internal/types"
)

// EncodeBody 按请求体类型编码出站内容
// 返回编码后的内容和对应的Content-Type，none类型两者皆空
func EncodeBody(spec types.BodySpec) (string, string, error) {
	switch spec.Type {
	case types.BodyJSON:
		// JSON原样透传，不重排也不校验
		return spec.Content, "application/json", nil

	case types.BodyURLEncoded:
		values, err := url.ParseQuery(spec.Content)
		if err != nil {
			return "", "", err
		}
		return values.Encode(), "application/x-www-form-urlencoded", nil

	case types.BodyFormData:
		values, err := url.ParseQuery(spec.Content)
		if err != nil {
			return "", "", err
		}
		var buf bytes.Buffer
		w := multipart.NewWriter(&buf)
		keys := make([]string, 0, len(values))
		for k := range values {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			for _, v := range values[k] {
				if err := w.WriteField(k, v); err != nil {
					return "", "", err
				}
			}
		}
		if err := w.Close(); err != nil {
			return "", "", err
		}
		return buf.String(), w.FormDataContentType(), nil

	default:
		return "", "", nil
	}
}

//go:build !ocr

package ocr

import "context"

func recognize(context.Context, []byte, string) ([]Word, error) {
	return nil, ErrOCRNotEnabled
}

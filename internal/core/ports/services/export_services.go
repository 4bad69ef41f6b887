package services

import (
	"bytes"
	"context"
)

// ExportSvc renders downloadable files. It returns the content and a suggested file name.
type ExportSvc interface {
	ExportGoatsXLSX(ctx context.Context, barnFilter string) (*bytes.Buffer, string, error)
	ExportCheckinsICS(ctx context.Context) (*bytes.Buffer, string, error)
}

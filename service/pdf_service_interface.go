package service

import "context"

// PDFServiceInterface defines the print output operations
type PDFServiceInterface interface {
	GeneratePDF(ctx context.Context, htmlContent string) ([]byte, error)
	GeneratePNG(ctx context.Context, htmlContent string) ([]byte, error)
}

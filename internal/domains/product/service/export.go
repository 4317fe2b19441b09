package service

import (
	"bytes"
	"context"
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"

	"samplemarine-backend/internal/domains/product/model"
)

const exportPageSize = 100

// Export writes the whole catalog to an xlsx workbook for offline editing.
func (s *productService) Export(ctx context.Context) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Products"
	f.SetSheetName(f.GetSheetName(0), sheet)

	headers := []string{"ID", "Title", "Slug", "Category", "Brand", "Price", "Featured", "Image", "Gallery Count", "Created At"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, fmt.Errorf("failed to write export header: %w", err)
		}
	}

	row := 2
	offset := 0
	for {
		products, total, err := s.repo.List(ctx, model.ProductFilter{Limit: exportPageSize, Offset: offset})
		if err != nil {
			return nil, fmt.Errorf("failed to load products for export: %w", err)
		}

		for _, p := range products {
			values := []interface{}{
				p.ID.String(),
				p.Title,
				p.Slug,
				p.Category,
				p.Brand,
				p.Price.String(),
				strconv.FormatBool(p.Featured),
				p.Image,
				len(p.Images),
				p.CreatedAt.Format("2006-01-02 15:04:05"),
			}
			for i, v := range values {
				cell, _ := excelize.CoordinatesToCellName(i+1, row)
				if err := f.SetCellValue(sheet, cell, v); err != nil {
					return nil, fmt.Errorf("failed to write export row: %w", err)
				}
			}
			row++
		}

		offset += len(products)
		if int64(offset) >= total || len(products) == 0 {
			break
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode export workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/olegiv/school-cms-go/internal/model"
	"github.com/olegiv/school-cms-go/internal/store"
)

// Export content types.
const (
	ContentTypeCSV  = "text/csv; charset=utf-8"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

const exportTimeLayout = "2006-01-02 15:04:05"

const inquirySheet = "Inquiries"

func inquiryRecord(inq store.AdmissionInquiry) []string {
	return []string{
		strconv.FormatInt(inq.ID, 10),
		inq.StudentName,
		inq.ParentName,
		inq.ClassApplying,
		inq.Mobile,
		inq.Email,
		inq.Address,
		inq.Message,
		inq.Status,
		inq.CreatedAt.UTC().Format(exportTimeLayout),
	}
}

// ExportFilename returns the attachment name for an export with extension ext.
func ExportFilename(ext string) string {
	return "admission_inquiries." + ext
}

func (s *InquiryService) exportRows(ctx context.Context) ([]store.AdmissionInquiry, error) {
	rows, err := s.queries.ListInquiries(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing inquiries for export: %w", err)
	}
	return rows, nil
}

// WriteCSV writes every inquiry, newest first, under the fixed header row.
func (s *InquiryService) WriteCSV(ctx context.Context, w io.Writer) error {
	rows, err := s.exportRows(ctx)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(model.InquiryExportColumns); err != nil {
		return err
	}
	for _, inq := range rows {
		if err := cw.Write(inquiryRecord(inq)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteXLSX writes the same table as WriteCSV as an Excel workbook.
func (s *InquiryService) WriteXLSX(ctx context.Context, w io.Writer) error {
	rows, err := s.exportRows(ctx)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", inquirySheet); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	setRow := func(rowNum int, values []string) error {
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, rowNum)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(inquirySheet, cell, v); err != nil {
				return err
			}
		}
		return nil
	}

	if err := setRow(1, model.InquiryExportColumns); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, inq := range rows {
		if err := setRow(i+2, inquiryRecord(inq)); err != nil {
			return fmt.Errorf("writing inquiry %d: %w", inq.ID, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

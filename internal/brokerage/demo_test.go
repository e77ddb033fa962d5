package brokerage

import (
	"archive/zip"
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestDemoAnalyticsFixtures(t *testing.T) {
	demo := NewDemo()

	got, err := demo.FinancialYearAnalytics(context.Background(), 2024)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || got.FinancialYearID != 2024 {
		t.Fatalf("expected 2024 fixture, got %+v", got)
	}

	missing, err := demo.FinancialYearAnalytics(context.Background(), 1999)
	if err != nil || missing != nil {
		t.Fatalf("expected (nil, nil) for an unknown year, got %+v %v", missing, err)
	}
}

func TestDemoBillArchive(t *testing.T) {
	demo := NewDemo()

	blob, err := demo.DownloadHTMLBills(context.Background(), []int64{101, 103}, 2024)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	reader, err := zip.NewReader(bytes.NewReader(blob), int64(len(blob)))
	if err != nil {
		t.Fatalf("archive is not a readable zip: %v", err)
	}
	if len(reader.File) != 2 {
		t.Fatalf("expected 2 bill entries, got %d", len(reader.File))
	}
	if reader.File[0].Name != "bill-101.html" {
		t.Fatalf("unexpected entry name %s", reader.File[0].Name)
	}

	entry, err := reader.File[0].Open()
	if err != nil {
		t.Fatalf("open entry: %v", err)
	}
	defer entry.Close()
	content := &bytes.Buffer{}
	if _, err := content.ReadFrom(entry); err != nil {
		t.Fatalf("read entry: %v", err)
	}
	if !strings.Contains(content.String(), "Agrawal Traders") {
		t.Fatalf("bill content missing firm name: %s", content.String())
	}

	excel, err := demo.DownloadExcelBills(context.Background(), []int64{104}, 2023)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	excelReader, err := zip.NewReader(bytes.NewReader(excel), int64(len(excel)))
	if err != nil {
		t.Fatalf("excel archive unreadable: %v", err)
	}
	if excelReader.File[0].Name != "bill-104.xls" {
		t.Fatalf("unexpected entry name %s", excelReader.File[0].Name)
	}
}

func TestDemoAvailability(t *testing.T) {
	demo := NewDemo()

	taken, _ := demo.CheckUsername(context.Background(), "  Admin ")
	if taken {
		t.Fatalf("expected admin to be taken after normalization")
	}
	available, _ := demo.CheckUsername(context.Background(), "newbroker")
	if !available {
		t.Fatalf("expected newbroker to be available")
	}
}

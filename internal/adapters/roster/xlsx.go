package roster

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"clubevents/internal/domain"

	"github.com/xuri/excelize/v2"
)

// DefaultSheet is the worksheet holding the member list.
const DefaultSheet = "Miembros"

// XLSXSource loads members from one worksheet of an Excel workbook.
type XLSXSource struct {
	path   string
	sheet  string
	logger *slog.Logger
}

// NewXLSXSource returns a roster source for the given workbook path and sheet.
func NewXLSXSource(path, sheet string, logger *slog.Logger) *XLSXSource {
	if sheet == "" {
		sheet = DefaultSheet
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &XLSXSource{path: path, sheet: sheet, logger: logger}
}

// Load reads the workbook. A missing file or sheet yields domain.ErrSourceMissing.
func (s *XLSXSource) Load(ctx context.Context) ([]*domain.Member, error) {
	f, err := excelize.OpenFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: workbook %s not found", domain.ErrSourceMissing, s.path)
		}
		return nil, fmt.Errorf("open workbook %s: %w", s.path, err)
	}
	defer f.Close()
	return s.read(ctx, f)
}

func (s *XLSXSource) read(ctx context.Context, f *excelize.File) ([]*domain.Member, error) {
	idx, err := f.GetSheetIndex(s.sheet)
	if err != nil {
		return nil, fmt.Errorf("look up sheet %q: %w", s.sheet, err)
	}
	if idx < 0 {
		return nil, fmt.Errorf("%w: sheet %q does not exist in %s", domain.ErrSourceMissing, s.sheet, s.path)
	}
	rows, err := f.GetRows(s.sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", s.sheet, err)
	}
	members, skipped, err := ParseRows(rows)
	if err != nil {
		return nil, fmt.Errorf("sheet %q: %w", s.sheet, err)
	}
	if skipped > 0 {
		s.logger.WarnContext(ctx, "roster rows without a valid matricula were skipped", "sheet", s.sheet, "skipped", skipped)
	}
	return members, nil
}

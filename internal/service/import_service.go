package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/straye-as/crm-portal/internal/auth"
	"github.com/straye-as/crm-portal/internal/domain"
	"github.com/straye-as/crm-portal/internal/storage"
	"github.com/tealeg/xlsx/v2"
	"go.uber.org/zap"
)

// importColumns maps accepted header spellings to lead fields
var importColumns = map[string]string{
	"companyname": "companyName",
	"company":     "companyName",
	"name":        "companyName",
	"industry":    "industry",
	"website":     "website",
	"email":       "email",
	"phone":       "phone",
	"segment":     "segment",
	"source":      "source",
	"dealvalue":   "dealValue",
	"value":       "dealValue",
	"score":       "score",
	"notes":       "notes",
}

const importSource = "import"

// ImportService creates lead companies from uploaded CSV or XLSX sheets
type ImportService struct {
	leads    LeadCompanyStore
	files    storage.Storage
	validate *validator.Validate
	maxRows  int
	logger   *zap.Logger
}

// NewImportService creates the importer. files may be nil, in which case the
// uploaded sheet is not archived.
func NewImportService(leads LeadCompanyStore, files storage.Storage, maxRows int, logger *zap.Logger) *ImportService {
	if maxRows <= 0 {
		maxRows = 1000
	}
	return &ImportService{
		leads:    leads,
		files:    files,
		validate: validator.New(),
		maxRows:  maxRows,
		logger:   logger,
	}
}

// ImportLeads archives the sheet, then creates one lead per data row in order.
// Invalid or rejected rows are reported and do not stop the import.
func (s *ImportService) ImportLeads(ctx context.Context, filename string, data []byte) (*domain.ImportResult, error) {
	rows, contentType, err := parseSheet(filename, data)
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("%w: the sheet has no data rows", ErrInvalidInput)
	}
	if len(rows)-1 > s.maxRows {
		return nil, fmt.Errorf("%w: %d rows exceeds the limit of %d", ErrInvalidInput, len(rows)-1, s.maxRows)
	}

	columns, err := mapHeader(rows[0])
	if err != nil {
		return nil, err
	}

	result := &domain.ImportResult{
		Rows:    len(rows) - 1,
		Created: []string{},
		Errors:  []domain.ImportRowError{},
	}

	if s.files != nil {
		key, _, err := s.files.Upload(ctx, importFolder(ctx), filename, contentType, bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to archive import file: %w", err)
		}
		result.FileKey = key
	}

	for i, row := range rows[1:] {
		line := i + 2
		if blankRow(row) {
			result.Rows--
			continue
		}
		req, err := rowToLead(columns, row)
		if err == nil {
			err = s.validate.StructCtx(ctx, req)
		}
		if err != nil {
			result.Errors = append(result.Errors, domain.ImportRowError{Row: line, Message: rowMessage(err)})
			continue
		}

		lead, err := s.leads.Create(ctx, req)
		if err != nil {
			result.Errors = append(result.Errors, domain.ImportRowError{Row: line, Message: err.Error()})
			continue
		}
		result.Created = append(result.Created, lead.ID)
	}

	s.logger.Info("Lead import finished",
		zap.String("file", filename),
		zap.String("file_key", result.FileKey),
		zap.Int("rows", result.Rows),
		zap.Int("created", len(result.Created)),
		zap.Int("errors", len(result.Errors)),
	)
	return result, nil
}

func importFolder(ctx context.Context) string {
	tenant := auth.EffectiveTenant(ctx)
	if tenant == "" {
		tenant = "shared"
	}
	return "imports/" + tenant
}

// parseSheet returns every row of a CSV file or the first sheet of an XLSX workbook
func parseSheet(filename string, data []byte) ([][]string, string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		rows, err := readCSV(data)
		return rows, "text/csv", err
	case ".xlsx":
		rows, err := readXLSX(data)
		return rows, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", err
	default:
		return nil, "", fmt.Errorf("%w: only .csv and .xlsx files can be imported", ErrInvalidInput)
	}
}

func readCSV(data []byte) ([][]string, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	if bytes.Count(firstLine(data), []byte(";")) > bytes.Count(firstLine(data), []byte(",")) {
		r.Comma = ';'
	}

	var rows [][]string
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			return rows, nil
		}
		if err != nil {
			return nil, fmt.Errorf("%w: csv: %v", ErrInvalidInput, err)
		}
		rows = append(rows, rec)
	}
}

func firstLine(data []byte) []byte {
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		return data[:i]
	}
	return data
}

func readXLSX(data []byte) ([][]string, error) {
	f, err := xlsx.OpenBinary(data)
	if err != nil {
		return nil, fmt.Errorf("%w: xlsx: %v", ErrInvalidInput, err)
	}
	if len(f.Sheets) == 0 {
		return nil, fmt.Errorf("%w: xlsx: workbook has no sheets", ErrInvalidInput)
	}

	var rows [][]string
	for _, row := range f.Sheets[0].Rows {
		if row == nil {
			continue
		}
		cells := make([]string, len(row.Cells))
		for j, cell := range row.Cells {
			cells[j] = cell.String()
		}
		rows = append(rows, cells)
	}
	return rows, nil
}

// mapHeader resolves column positions. The company name column is required.
func mapHeader(header []string) (map[string]int, error) {
	columns := map[string]int{}
	for i, h := range header {
		key := strings.ToLower(strings.NewReplacer(" ", "", "_", "", "-", "").Replace(strings.TrimSpace(h)))
		if field, ok := importColumns[key]; ok {
			if _, dup := columns[field]; !dup {
				columns[field] = i
			}
		}
	}
	if _, ok := columns["companyName"]; !ok {
		return nil, fmt.Errorf("%w: missing company name column", ErrInvalidInput)
	}
	return columns, nil
}

func rowToLead(columns map[string]int, row []string) (*domain.CreateLeadCompanyRequest, error) {
	get := func(field string) string {
		i, ok := columns[field]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	req := &domain.CreateLeadCompanyRequest{
		CompanyName: get("companyName"),
		Industry:    get("industry"),
		Website:     get("website"),
		Email:       strings.ToLower(get("email")),
		Phone:       get("phone"),
		Segment:     get("segment"),
		Source:      get("source"),
		Notes:       get("notes"),
		Status:      domain.LeadStatusNew,
	}
	if req.Source == "" {
		req.Source = importSource
	}
	if v := get("dealValue"); v != "" {
		f, err := parseAmount(v)
		if err != nil {
			return nil, fmt.Errorf("deal value %q is not a number", v)
		}
		req.DealValue = f
	}
	if v := get("score"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("score %q is not a whole number", v)
		}
		req.Score = n
	}
	return req, nil
}

// parseAmount reads a spreadsheet amount such as "12 500,50", "1,000" or "1.234,56".
// The last separator is the decimal point when one or two digits follow it, or
// when it is the only "."; every other separator must group three digits.
func parseAmount(v string) (float64, error) {
	s := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, v)

	whole, frac := s, ""
	if i := strings.LastIndexAny(s, ",."); i >= 0 {
		digits := len(s) - i - 1
		loneDot := s[i] == '.' && strings.Count(s, ".") == 1
		if (digits >= 1 && digits <= 2) || loneDot {
			whole, frac = s[:i], s[i+1:]
		}
	}

	groups := strings.Split(strings.ReplaceAll(whole, ".", ","), ",")
	for i, g := range groups[1:] {
		if len(g) != 3 {
			return 0, fmt.Errorf("misplaced separator in group %d", i+2)
		}
	}
	if len(groups) > 1 && len(strings.TrimPrefix(groups[0], "-")) == 0 {
		return 0, errors.New("leading separator")
	}

	num := strings.Join(groups, "")
	if frac != "" {
		num += "." + frac
	}
	return strconv.ParseFloat(num, 64)
}

func blankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func rowMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
		}
		return strings.Join(msgs, "; ")
	}
	return err.Error()
}

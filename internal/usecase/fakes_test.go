package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"chatspace-exporter/internal/domain/entity"
	"chatspace-exporter/internal/domain/repository"

	"golang.org/x/oauth2"
)

type fakeSpaceRepo struct {
	spaces []*entity.Space
	err    error
}

func (f *fakeSpaceRepo) ListSpaces(ctx context.Context) ([]*entity.Space, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.spaces, nil
}

// fakeWorksheet keeps one worksheet as a grid of cells
type fakeWorksheet struct {
	exists   bool
	grid     map[int]map[int]string // row -> col -> value, both 1-based
	calls    []string
	writeErr error
}

func newFakeWorksheet(exists bool, header ...string) *fakeWorksheet {
	w := &fakeWorksheet{exists: exists, grid: map[int]map[int]string{}}
	for i, h := range header {
		w.set(1, i+1, h)
	}
	return w
}

func (w *fakeWorksheet) set(row, col int, v string) {
	if w.grid[row] == nil {
		w.grid[row] = map[int]string{}
	}
	w.grid[row][col] = v
}

func (w *fakeWorksheet) row(n int) []string {
	cells := w.grid[n]
	last := 0
	for c := range cells {
		if c > last {
			last = c
		}
	}
	out := make([]string, last)
	for c, v := range cells {
		out[c-1] = v
	}
	return out
}

func (w *fakeWorksheet) EnsureWorksheet(ctx context.Context, spreadsheetID, title string, header []string) (bool, error) {
	w.calls = append(w.calls, "ensure")
	if w.exists {
		return false, nil
	}
	w.exists = true
	for i, h := range header {
		w.set(1, i+1, h)
	}
	return true, nil
}

func (w *fakeWorksheet) ReadHeader(ctx context.Context, spreadsheetID, title string) ([]string, error) {
	w.calls = append(w.calls, "read_header")
	if !w.exists {
		return nil, fmt.Errorf("%w: %s", entity.ErrWorksheetNotFound, title)
	}
	return w.row(1), nil
}

func (w *fakeWorksheet) ReadRows(ctx context.Context, spreadsheetID, rangeA1 string) ([][]string, error) {
	w.calls = append(w.calls, "read_rows")
	r := parseRange(rangeA1)
	var rows [][]string
	for n := r.startRow; n <= r.endRow(w); n++ {
		full := w.row(n)
		var row []string
		for c := r.startCol; c <= r.endCol && c <= len(full); c++ {
			row = append(row, full[c-1])
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (w *fakeWorksheet) WriteRows(ctx context.Context, spreadsheetID, rangeA1 string, rows [][]interface{}) error {
	w.calls = append(w.calls, "write:"+rangeA1)
	if w.writeErr != nil {
		return w.writeErr
	}
	r := parseRange(rangeA1)
	for i, row := range rows {
		for j, v := range row {
			w.set(r.startRow+i, r.startCol+j, fmt.Sprint(v))
		}
	}
	return nil
}

func (w *fakeWorksheet) ClearRange(ctx context.Context, spreadsheetID, rangeA1 string) error {
	w.calls = append(w.calls, "clear:"+rangeA1)
	r := parseRange(rangeA1)
	for n := r.startRow; n <= r.endRow(w); n++ {
		for c := r.startCol; c <= r.endCol; c++ {
			delete(w.grid[n], c)
		}
	}
	return nil
}

func (w *fakeWorksheet) maxRow() int {
	last := 0
	for n := range w.grid {
		if n > last {
			last = n
		}
	}
	return last
}

type a1Range struct {
	startRow, startCol int
	endRowN, endCol    int // endRowN 0 means open-ended
}

func (r a1Range) endRow(w *fakeWorksheet) int {
	if r.endRowN == 0 {
		return w.maxRow()
	}
	return r.endRowN
}

// parseRange understands the shapes the exporter produces: A2:E3, A3:E, 1:1
func parseRange(rangeA1 string) a1Range {
	if i := strings.LastIndex(rangeA1, "!"); i >= 0 {
		rangeA1 = rangeA1[i+1:]
	}
	parts := strings.SplitN(rangeA1, ":", 2)
	sc, sr := splitCell(parts[0])
	ec, er := splitCell(parts[1])
	if sc == 0 {
		sc, ec = 1, 26
	}
	return a1Range{startRow: sr, startCol: sc, endRowN: er, endCol: ec}
}

func splitCell(cell string) (col, row int) {
	i := 0
	for i < len(cell) && cell[i] >= 'A' && cell[i] <= 'Z' {
		col = col*26 + int(cell[i]-'A'+1)
		i++
	}
	if i < len(cell) {
		row, _ = strconv.Atoi(cell[i:])
	}
	return col, row
}

type fakeFactory struct {
	spaces    *fakeSpaceRepo
	sheet     *fakeWorksheet
	chatErr   error
	sheetsErr error
}

func (f *fakeFactory) NewSpaceRepository(ctx context.Context, ts oauth2.TokenSource) (repository.SpaceRepository, error) {
	if f.chatErr != nil {
		return nil, f.chatErr
	}
	return f.spaces, nil
}

func (f *fakeFactory) NewWorksheetRepository(ctx context.Context, ts oauth2.TokenSource) (repository.WorksheetRepository, error) {
	if f.sheetsErr != nil {
		return nil, f.sheetsErr
	}
	return f.sheet, nil
}

type fakeRunRepo struct {
	runs    []*entity.ExportRun
	saveErr error
}

func (r *fakeRunRepo) Save(ctx context.Context, run *entity.ExportRun) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.runs = append(r.runs, run)
	return nil
}

func (r *fakeRunRepo) FindRecent(ctx context.Context, limit int) ([]*entity.ExportRun, error) {
	if limit > len(r.runs) {
		limit = len(r.runs)
	}
	return r.runs[:limit], nil
}

var staticToken = oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "test"})

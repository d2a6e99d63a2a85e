package chart

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/samber/lo"
	gochart "github.com/wcharczuk/go-chart/v2"
)

// ErrNoData is returned when there is nothing to plot.
var ErrNoData = errors.New("no books borrowed yet")

const (
	Title = "Most Borrowed Books"
	size  = 800
)

// Slice is one title and how many of its copies are on loan.
type Slice struct {
	Title string `json:"title"`
	Count int    `json:"count"`
}

// Frequencies counts borrowed titles. Slices are ordered by count, then title.
func Frequencies(titles []string) []Slice {
	counts := lo.CountValues(titles)
	slices := lo.MapToSlice(counts, func(title string, n int) Slice {
		return Slice{Title: title, Count: n}
	})
	sort.Slice(slices, func(i, j int) bool {
		if slices[i].Count != slices[j].Count {
			return slices[i].Count > slices[j].Count
		}
		return slices[i].Title < slices[j].Title
	})
	return slices
}

// Labels formats each slice as "title (xx.x%)".
func Labels(slices []Slice) []string {
	total := lo.SumBy(slices, func(s Slice) int { return s.Count })
	return lo.Map(slices, func(s Slice, _ int) string {
		return fmt.Sprintf("%s (%.1f%%)", s.Title, 100*float64(s.Count)/float64(total))
	})
}

// RenderPie writes a PNG pie chart of the borrowed titles to w.
func RenderPie(w io.Writer, titles []string) error {
	slices := Frequencies(titles)
	if len(slices) == 0 {
		return ErrNoData
	}

	labels := Labels(slices)
	values := make([]gochart.Value, 0, len(slices))
	for i, s := range slices {
		values = append(values, gochart.Value{Value: float64(s.Count), Label: labels[i]})
	}

	pie := gochart.PieChart{
		Title:  Title,
		Width:  size,
		Height: size,
		Values: values,
	}
	if err := pie.Render(gochart.PNG, w); err != nil {
		return fmt.Errorf("render pie chart: %w", err)
	}
	return nil
}

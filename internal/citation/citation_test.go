// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package citation

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/happyref/pkg/types"
)

func deepLearning() types.Record {
	return types.Record{
		Title: []string{"Deep Learning"},
		Authors: []types.Author{
			{Given: "Yann", Family: "LeCun"},
			{Given: "Yoshua", Family: "Bengio"},
			{Given: "Geoffrey E.", Family: "Hinton"},
		},
		ContainerTitle: []string{"Nature"},
		Issued:         &types.Date{Year: 2015, Month: 5, Day: 27},
		Volume:         "521",
		Issue:          "7553",
		Page:           "436-444",
		DOI:            "10.1038/nature14539",
		DateAccessed:   "2026-10-18",
	}
}

func TestFormatAllStyles(t *testing.T) {
	tests := []struct {
		style types.CitationStyle
		want  string
	}{
		{types.StyleHarvard, "LeCun, Y., Bengio, Y., Hinton, G. (2015) Deep Learning. *Nature*, 521(7553), pp. 436-444. Available at: https://doi.org/10.1038/nature14539 (Accessed: 18 October 2026)."},
		{types.StyleVancouver, "LeCun Y, Bengio Y, Hinton G. Deep Learning. Nature. 2015;521(7553):436-444. doi:10.1038/nature14539"},
		{types.StyleAPA, "LeCun, Y., Bengio, Y., & Hinton, G. (2015). Deep Learning. *Nature*, *521*(7553), 436-444. https://doi.org/10.1038/nature14539"},
		{types.StyleChicago, `Yann LeCun, Yoshua Bengio, and Geoffrey E. Hinton. "Deep Learning." *Nature* 521, no. 7553 (2015): 436-444. https://doi.org/10.1038/nature14539.`},
		{types.StyleAMA, "LeCun Y, Bengio Y, Hinton GE. Deep Learning. *Nature*. 2015;521(7553):436-444. doi:10.1038/nature14539"},
		{types.StyleAP, "LeCun, Y., Bengio, Y., Hinton, G. (2015). Deep Learning. _Nature_, 521(7553), 436-444. https://doi.org/10.1038/nature14539"},
		{types.StyleCanadian, `Yann LeCun and Yoshua Bengio and Geoffrey E. Hinton, "Deep Learning" (2015) 521:7553 _Nature_ 436-444, DOI: <10.1038/nature14539> (accessed 18 October 2026).`},
		{types.StyleOxford, "Yann LeCun, Yoshua Bengio, and Geoffrey E. Hinton, 'Deep Learning', *Nature*, 521/7553 (2015), 436-444, doi:10.1038/nature14539."},
	}
	for _, tt := range tests {
		t.Run(string(tt.style), func(t *testing.T) {
			assert.Equal(t, tt.want, Format(deepLearning(), tt.style))
		})
	}
}

func TestFormatNoneIsEmpty(t *testing.T) {
	assert.Equal(t, "", Format(deepLearning(), types.StyleNone))
	assert.Equal(t, "", Format(deepLearning(), types.CitationStyle("mla")))
}

func TestFormatMissingData(t *testing.T) {
	strip := map[string]func(*types.Record){
		"authors":   func(r *types.Record) { r.Authors = nil },
		"issued":    func(r *types.Record) { r.Issued = nil },
		"title":     func(r *types.Record) { r.Title = nil },
		"container": func(r *types.Record) { r.ContainerTitle = []string{} },
		"blank authors": func(r *types.Record) {
			r.Authors = []types.Author{{}}
		},
	}
	for field, mutate := range strip {
		for _, style := range types.CitationStyles {
			if style == types.StyleNone {
				continue
			}
			t.Run(fmt.Sprintf("%s/%s", field, style), func(t *testing.T) {
				rec := deepLearning()
				mutate(&rec)
				got := Format(rec, style)
				want := fmt.Sprintf("Could not generate %s citation due to missing data.", style.DisplayName())
				assert.Equal(t, want, got)
				assert.True(t, IsDiagnostic(got))
			})
		}
	}
}

func TestFormatMissingYear(t *testing.T) {
	for _, style := range types.CitationStyles {
		if style == types.StyleNone {
			continue
		}
		t.Run(string(style), func(t *testing.T) {
			rec := deepLearning()
			rec.Issued = &types.Date{}
			got := Format(rec, style)
			assert.Equal(t, fmt.Sprintf("Could not generate %s citation due to missing year data.", style.DisplayName()), got)
		})
	}
}

func TestFormatEmptyRecordNeverPanics(t *testing.T) {
	for _, style := range types.CitationStyles {
		assert.NotPanics(t, func() { Format(types.Record{}, style) })
	}
}

func TestHarvardSingleAuthor(t *testing.T) {
	rec := types.Record{
		Title:          []string{"Deep Learning"},
		Authors:        []types.Author{{Given: "Yann", Family: "LeCun"}},
		ContainerTitle: []string{"Nature"},
		Issued:         &types.Date{Year: 2015},
		DOI:            "10.1/x",
	}
	got := Format(rec, types.StyleHarvard)
	assert.True(t, strings.HasPrefix(got, "LeCun, Y. (2015) Deep Learning. *Nature*."), got)
	assert.Equal(t, "LeCun, Y. (2015) Deep Learning. *Nature*. Available at: https://doi.org/10.1/x.", got)
}

func manyAuthors(n int) []types.Author {
	authors := make([]types.Author, n)
	for i := range authors {
		authors[i] = types.Author{Given: "Given", Family: fmt.Sprintf("Author%d", i+1)}
	}
	return authors
}

func TestAPAAuthorJoins(t *testing.T) {
	tests := []struct {
		name string
		n    int
		want string
	}{
		{"one", 1, "Author1, G."},
		{"two", 2, "Author1, G. & Author2, G."},
		{"three", 3, "Author1, G., Author2, G., & Author3, G."},
		{"twenty", 20, ", & Author20, G."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := deepLearning()
			rec.Authors = manyAuthors(tt.n)
			got := Format(rec, types.StyleAPA)
			if tt.n == 20 {
				assert.Contains(t, got, tt.want)
				assert.NotContains(t, got, "...")
				return
			}
			assert.True(t, strings.HasPrefix(got, tt.want+" (2015)."), got)
		})
	}
}

func TestAPAMoreThanTwentyAuthors(t *testing.T) {
	rec := deepLearning()
	rec.Authors = manyAuthors(25)
	got := Format(rec, types.StyleAPA)

	var first []string
	for i := 1; i <= 19; i++ {
		first = append(first, fmt.Sprintf("Author%d, G.", i))
	}
	want := strings.Join(first, ", ") + ", ..., Author25, G. (2015)."
	require.True(t, strings.HasPrefix(got, want), got)
	for i := 20; i <= 24; i++ {
		assert.NotContains(t, got, fmt.Sprintf("Author%d,", i))
	}
}

func TestVancouverEtAl(t *testing.T) {
	rec := deepLearning()
	rec.Authors = manyAuthors(4)
	got := Format(rec, types.StyleVancouver)
	assert.True(t, strings.HasPrefix(got, "Author1 G, Author2 G, et al. Deep Learning."), got)

	rec.Authors = manyAuthors(3)
	got = Format(rec, types.StyleVancouver)
	assert.True(t, strings.HasPrefix(got, "Author1 G, Author2 G, Author3 G. Deep Learning."), got)
}

func TestChicagoAuthorJoins(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{1, `Given Author1. "Deep Learning."`},
		{2, `Given Author1 and Given Author2. "Deep Learning."`},
		{3, `Given Author1, Given Author2, and Given Author3. "Deep Learning."`},
		{4, `Given Author1 et al. "Deep Learning."`},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d authors", tt.n), func(t *testing.T) {
			rec := deepLearning()
			rec.Authors = manyAuthors(tt.n)
			got := Format(rec, types.StyleChicago)
			assert.True(t, strings.HasPrefix(got, tt.want), got)
		})
	}
}

func TestAMAListsEveryAuthor(t *testing.T) {
	rec := deepLearning()
	rec.Authors = manyAuthors(8)
	got := Format(rec, types.StyleAMA)
	for i := 1; i <= 8; i++ {
		assert.Contains(t, got, fmt.Sprintf("Author%d G", i))
	}
	assert.NotContains(t, got, "et al")
}

func TestLinkFallbacks(t *testing.T) {
	noDOI := deepLearning()
	noDOI.DOI = ""
	noDOI.URL = "https://example.org/paper"

	bare := deepLearning()
	bare.DOI = ""

	tests := []struct {
		style    types.CitationStyle
		rec      types.Record
		contains string
		suffix   string
	}{
		{types.StyleHarvard, noDOI, "Available at: https://example.org/paper (Accessed: 18 October 2026).", ""},
		{types.StyleVancouver, noDOI, "Available from: https://example.org/paper", ""},
		{types.StyleAPA, noDOI, "Retrieved from https://example.org/paper", ""},
		{types.StyleAMA, noDOI, "Accessed October 18, 2026. https://example.org/paper", ""},
		{types.StyleOxford, noDOI, "<https://example.org/paper>, accessed 18 October 2026.", ""},
		{types.StyleCanadian, noDOI, "online: <https://example.org/paper> (accessed 18 October 2026).", ""},
		{types.StyleHarvard, bare, "", "pp. 436-444."},
		{types.StyleAPA, bare, "", "436-444."},
		{types.StyleCanadian, bare, "", "436-444 (accessed 18 October 2026)."},
	}
	for _, tt := range tests {
		t.Run(string(tt.style), func(t *testing.T) {
			got := Format(tt.rec, tt.style)
			if tt.contains != "" {
				assert.Contains(t, got, tt.contains)
			}
			if tt.suffix != "" {
				assert.True(t, strings.HasSuffix(got, tt.suffix), got)
			}
			assert.NotContains(t, got, "doi.org")
		})
	}
}

func TestHarvardOmitsAccessDateWithoutLink(t *testing.T) {
	rec := deepLearning()
	rec.DOI = ""
	rec.URL = ""
	require.NotEmpty(t, rec.DateAccessed)

	got := Format(rec, types.StyleHarvard)
	assert.Equal(t, "LeCun, Y., Bengio, Y., Hinton, G. (2015) Deep Learning. *Nature*, 521(7553), pp. 436-444.", got)
	assert.NotContains(t, got, "Accessed")
}

func TestAccessedOnUnparsable(t *testing.T) {
	assert.Equal(t, "yesterday", accessedOn("yesterday", dayMonthYear))
	assert.Equal(t, "3 March 2024", accessedOn("2024-03-03", dayMonthYear))
}

func TestDOILinkStripsResolver(t *testing.T) {
	assert.Equal(t, "https://doi.org/10.1/x", doiLink("https://dx.doi.org/10.1/x"))
	assert.Equal(t, "https://doi.org/10.1/x", doiLink("10.1/x"))
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package citation

import (
	"fmt"
	"strings"
)

// volumeIssue writes volume and issue as "V(I)", "V" or "(I)".
func volumeIssue(p parts) string {
	s := p.Volume
	if p.Issue != "" {
		s += "(" + p.Issue + ")"
	}
	return s
}

// harvard: LeCun, Y. (2015) Deep Learning. *Nature*, 521(7553), pp. 436-444.
// Available at: https://doi.org/... (Accessed: 18 October 2026).
func harvard(p parts) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%d) %s *%s*", p.Authors, p.Year, terminate(p.Title), p.Journal)
	if vi := volumeIssue(p); vi != "" {
		b.WriteString(", " + vi)
	}
	if p.Page != "" {
		b.WriteString(", pp. " + p.Page)
	}
	b.WriteString(".")

	link := ""
	switch {
	case p.DOI != "":
		link = doiLink(p.DOI)
	case p.URL != "":
		link = p.URL
	}
	if link != "" {
		b.WriteString(" Available at: " + link)
		if p.Accessed != "" {
			b.WriteString(" (Accessed: " + accessedOn(p.Accessed, dayMonthYear) + ")")
		}
		b.WriteString(".")
	}
	return b.String()
}

// vancouver: LeCun Y, Bengio Y, et al. Deep Learning. Nature.
// 2015;521(7553):436-444. doi:10.1038/...
func vancouver(p parts) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s %s %d", terminate(p.Authors), terminate(p.Title), terminate(p.Journal), p.Year)
	if vi := volumeIssue(p); vi != "" {
		b.WriteString(";" + vi)
	}
	if p.Page != "" {
		b.WriteString(":" + p.Page)
	}
	b.WriteString(".")
	switch {
	case p.DOI != "":
		b.WriteString(" doi:" + p.DOI)
	case p.URL != "":
		b.WriteString(" Available from: " + p.URL)
	}
	return b.String()
}

// apa: LeCun, Y., Bengio, Y., & Hinton, G. (2015). Deep Learning. *Nature*,
// *521*(7553), 436-444. https://doi.org/...
func apa(p parts) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%d). %s *%s*", p.Authors, p.Year, terminate(p.Title), p.Journal)
	if p.Volume != "" {
		b.WriteString(", *" + p.Volume + "*")
	}
	if p.Issue != "" {
		if p.Volume == "" {
			b.WriteString(", ")
		}
		b.WriteString("(" + p.Issue + ")")
	}
	if p.Page != "" {
		b.WriteString(", " + p.Page)
	}
	b.WriteString(".")
	switch {
	case p.DOI != "":
		b.WriteString(" " + doiLink(p.DOI))
	case p.URL != "":
		b.WriteString(" Retrieved from " + p.URL)
	}
	return b.String()
}

// chicago: Yann LeCun, Yoshua Bengio, and Geoffrey Hinton. "Deep Learning."
// *Nature* 521, no. 7553 (2015): 436-444. https://doi.org/....
func chicago(p parts) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s \"%s\" *%s*", terminate(p.Authors), terminate(p.Title), p.Journal)
	if p.Volume != "" {
		b.WriteString(" " + p.Volume)
	}
	if p.Issue != "" {
		b.WriteString(", no. " + p.Issue)
	}
	fmt.Fprintf(&b, " (%d)", p.Year)
	if p.Page != "" {
		b.WriteString(": " + p.Page)
	}
	b.WriteString(".")
	switch {
	case p.DOI != "":
		b.WriteString(" " + doiLink(p.DOI) + ".")
	case p.URL != "":
		b.WriteString(" " + p.URL + ".")
	}
	return b.String()
}

// ama: LeCun Y, Bengio Y, Hinton GE. Deep Learning. *Nature*.
// 2015;521(7553):436-444. doi:10.1038/...
func ama(p parts) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s *%s*. %d", terminate(p.Authors), terminate(p.Title), p.Journal, p.Year)
	if vi := volumeIssue(p); vi != "" {
		b.WriteString(";" + vi)
	}
	if p.Page != "" {
		b.WriteString(":" + p.Page)
	}
	b.WriteString(".")
	switch {
	case p.DOI != "":
		b.WriteString(" doi:" + p.DOI)
	case p.URL != "":
		if p.Accessed != "" {
			b.WriteString(" Accessed " + accessedOn(p.Accessed, monthDayYear) + ".")
		}
		b.WriteString(" " + p.URL)
	}
	return b.String()
}

// ap: LeCun, Y., Bengio, Y. (2015). Deep Learning. _Nature_, 521(7553),
// 436-444. https://doi.org/...
func ap(p parts) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%d). %s _%s_", p.Authors, p.Year, terminate(p.Title), p.Journal)
	if vi := volumeIssue(p); vi != "" {
		b.WriteString(", " + vi)
	}
	if p.Page != "" {
		b.WriteString(", " + p.Page)
	}
	b.WriteString(".")
	switch {
	case p.DOI != "":
		b.WriteString(" " + doiLink(p.DOI))
	case p.URL != "":
		b.WriteString(" " + p.URL)
	}
	return b.String()
}

// canadian: Yann LeCun and Yoshua Bengio, "Deep Learning" (2015) 521:7553
// _Nature_ 436, DOI: <10.1038/...> (accessed 18 October 2026).
func canadian(p parts) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s, \"%s\" (%d)", p.Authors, p.Title, p.Year)
	if p.Volume != "" {
		b.WriteString(" " + p.Volume)
		if p.Issue != "" {
			b.WriteString(":" + p.Issue)
		}
	}
	b.WriteString(" _" + p.Journal + "_")
	if p.Page != "" {
		b.WriteString(" " + p.Page)
	}
	switch {
	case p.DOI != "":
		b.WriteString(", DOI: <" + p.DOI + ">")
	case p.URL != "":
		b.WriteString(", online: <" + p.URL + ">")
	}
	if p.Accessed != "" {
		b.WriteString(" (accessed " + accessedOn(p.Accessed, dayMonthYear) + ")")
	}
	b.WriteString(".")
	return b.String()
}

// oxford: Yann LeCun, Yoshua Bengio, and Geoffrey Hinton, 'Deep Learning',
// *Nature*, 521/7553 (2015), 436-444, doi:10.1038/....
func oxford(p parts) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s, '%s', *%s*", p.Authors, p.Title, p.Journal)
	if p.Volume != "" {
		b.WriteString(", " + p.Volume)
		if p.Issue != "" {
			b.WriteString("/" + p.Issue)
		}
	}
	fmt.Fprintf(&b, " (%d)", p.Year)
	if p.Page != "" {
		b.WriteString(", " + p.Page)
	}
	switch {
	case p.DOI != "":
		b.WriteString(", doi:" + p.DOI)
	case p.URL != "":
		b.WriteString(", <" + p.URL + ">")
		if p.Accessed != "" {
			b.WriteString(", accessed " + accessedOn(p.Accessed, dayMonthYear))
		}
	}
	b.WriteString(".")
	return b.String()
}

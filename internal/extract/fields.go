// Package extract pulls typed fields out of a single RPV case paragraph.
package extract

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"rpvscraper/internal/normalize"
)

var (
	reCaseNumber = regexp.MustCompile(`Processo\s+(\S+)`)
	reParties    = regexp.MustCompile(`-\s*([^-]+?)\s*-\s*Vistos\.?(?:\s*1\))?`)
	reAttorneys  = regexp.MustCompile(`ADV:\s*(.*?)(?:$|\n)`)
	reLineItem   = regexp.MustCompile(`R\$\s*([\d.,-]+)\s*-\s*([a-zA-Z\s/çáéíóúâêôãõàüÇÁÉÍÓÚÂÊÔÃÕÀÜ]+);?`)

	reAvailabilityDate = regexp.MustCompile(
		`\b(?:segunda-feira|terça-feira|quarta-feira|quinta-feira|sexta-feira|sábado|domingo), \d{1,2} de \p{L}+ de \d{4}\b`)
)

// Target names the record field a line item is routed to.
type Target int

const (
	Principal Target = iota
	DefaultInterest
	AttorneyFee
)

// Bucket routes line items whose lower-cased label contains Keyword.
type Bucket struct {
	Keyword string
	Target  Target
}

// DefaultBuckets returns the categories printed in INSS RPV orders, in the
// order they are tried.
func DefaultBuckets() []Bucket {
	return []Bucket{
		{Keyword: "principal", Target: Principal},
		{Keyword: "juros moratório", Target: DefaultInterest},
		{Keyword: "honorário", Target: AttorneyFee},
	}
}

// LineItem is one "R$ <amount> - <label>" fragment.
type LineItem struct {
	Amount string
	Label  string
}

// Fields are the paragraph-derived parts of a record. Nil means not found.
type Fields struct {
	CaseNumber      *string
	Parties         *string
	Attorneys       *string
	Principal       *decimal.Decimal
	DefaultInterest *decimal.Decimal
	AttorneyFee     *decimal.Decimal
}

// Extractor is stateless once built and safe for concurrent use.
type Extractor struct {
	buckets []Bucket
}

// New creates an Extractor. Without buckets it uses DefaultBuckets.
func New(buckets ...Bucket) *Extractor {
	if len(buckets) == 0 {
		buckets = DefaultBuckets()
	}
	return &Extractor{buckets: buckets}
}

// Extract reads every field it can find in paragraph. It never fails: a
// pattern that does not match leaves its field nil. Non-ASCII space
// separators count as spaces.
func (e *Extractor) Extract(paragraph string) Fields {
	paragraph = normalize.Spaces(paragraph)
	f := Fields{
		CaseNumber: firstGroup(reCaseNumber, paragraph),
		Parties:    firstGroup(reParties, paragraph),
		Attorneys:  firstGroup(reAttorneys, paragraph),
	}

	// A later line item for the same bucket overwrites the earlier one.
	for _, item := range LineItems(paragraph) {
		target, ok := e.Classify(item.Label)
		if !ok {
			continue
		}
		amount := normalize.ParseAmount(item.Amount)
		switch target {
		case Principal:
			f.Principal = amount
		case DefaultInterest:
			f.DefaultInterest = amount
		case AttorneyFee:
			f.AttorneyFee = amount
		}
	}
	return f
}

// Classify returns the target of the first bucket whose keyword the label contains.
func (e *Extractor) Classify(label string) (Target, bool) {
	lower := strings.ToLower(label)
	for _, b := range e.buckets {
		if strings.Contains(lower, b.Keyword) {
			return b.Target, true
		}
	}
	return 0, false
}

// LineItems returns every monetary fragment of paragraph in order.
func LineItems(paragraph string) []LineItem {
	matches := reLineItem.FindAllStringSubmatch(normalize.Spaces(paragraph), -1)
	items := make([]LineItem, 0, len(matches))
	for _, m := range matches {
		items = append(items, LineItem{
			Amount: strings.TrimSpace(m[1]),
			Label:  m[2],
		})
	}
	return items
}

// FindAvailabilityDate finds the first "<weekday>, <d> de <month> de <yyyy>"
// in a whole document and parses it.
func FindAvailabilityDate(text string) *time.Time {
	m := reAvailabilityDate.FindString(normalize.Spaces(text))
	if m == "" {
		return nil
	}
	return normalize.ParseDate(strings.TrimSpace(m))
}

func firstGroup(re *regexp.Regexp, s string) *string {
	m := re.FindStringSubmatch(s)
	if m == nil {
		return nil
	}
	v := strings.TrimSpace(m[1])
	return &v
}

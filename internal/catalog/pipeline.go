package catalog

import (
	"sync"

	"github.com/nikolayk812/storefront/internal/domain"
	"golang.org/x/text/language"
)

// Input identifies one evaluation of the pipeline. Version must change whenever
// the Products slice is replaced; the slice itself is not compared.
type Input struct {
	Version  uint64
	Products []domain.Product
	Criteria domain.FilterCriteria
	SortKey  domain.SortKey
	Page     int
}

// Pipeline memoizes filter, sort and paginate on the last input it saw.
type Pipeline struct {
	tag      language.Tag
	pageSize int

	mu          sync.Mutex
	derived     bool
	last        Input
	sorted      []domain.Product
	page        Page
	derivations int
}

func NewPipeline(tag language.Tag, pageSize int) *Pipeline {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Pipeline{tag: tag, pageSize: pageSize}
}

func (p *Pipeline) Run(in Input) Page {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.derived || !p.sameDerivation(in) {
		p.sorted = Sort(Filter(in.Products, in.Criteria), in.SortKey, p.tag)
		p.page = Paginate(p.sorted, in.Page, p.pageSize)
		p.derivations++
		p.derived = true
	} else if in.Page != p.last.Page {
		p.page = Paginate(p.sorted, in.Page, p.pageSize)
	}
	p.last = in

	return copyPage(p.page)
}

// Derivations counts how many times filter and sort actually ran.
func (p *Pipeline) Derivations() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.derivations
}

func (p *Pipeline) sameDerivation(in Input) bool {
	return in.Version == p.last.Version &&
		in.SortKey == p.last.SortKey &&
		in.Criteria.Equal(p.last.Criteria)
}

func copyPage(page Page) Page {
	page.Items = append([]domain.Product{}, page.Items...)
	return page
}

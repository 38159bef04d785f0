package identdata

import (
	"github.com/524D/mzidtool/internal/cv"
)

// AnalysisSoftware describes a program that produced part of the document
type AnalysisSoftware struct {
	base
	ID             string
	Name           string
	Version        string
	URI            string
	Customizations string
	ContactRole    *ContactRole
	SoftwareName   cv.Param
}

func (s *AnalysisSoftware) SetContext(ctx *Context) {
	if s == nil || s.ctx == ctx {
		return
	}
	s.ctx = ctx
	s.ContactRole.SetContext(ctx)
}

func (s *AnalysisSoftware) Equal(o *AnalysisSoftware) bool {
	if s == nil || o == nil {
		return s == o
	}
	if s == o {
		return true
	}
	return s.Name == o.Name && s.Version == o.Version && s.URI == o.URI &&
		s.Customizations == o.Customizations &&
		s.ContactRole.Equal(o.ContactRole) &&
		cv.ParamEqual(s.SoftwareName, o.SoftwareName)
}

// Contact is a *Person or an *Organization
type Contact interface {
	contact()
	SetContext(*Context)
}

func (*Person) contact()       {}
func (*Organization) contact() {}

func contactEqual(a, b Contact) bool {
	switch a := a.(type) {
	case *Person:
		p, ok := b.(*Person)
		return ok && a.Equal(p)
	case *Organization:
		o, ok := b.(*Organization)
		return ok && a.Equal(o)
	}
	return b == nil
}

// ContactRole links a contact to its role in the analysis
type ContactRole struct {
	base
	Contact Contact
	Role    cv.Param
}

func (r *ContactRole) SetContext(ctx *Context) {
	if r == nil || r.ctx == ctx {
		return
	}
	r.ctx = ctx
	if r.Contact != nil {
		r.Contact.SetContext(ctx)
	}
}

func (r *ContactRole) Equal(o *ContactRole) bool {
	if r == nil || o == nil {
		return r == o
	}
	return r == o || (contactEqual(r.Contact, o.Contact) && cv.ParamEqual(r.Role, o.Role))
}

// Person is a contact
type Person struct {
	base
	ID           string
	Name         string
	LastName     string
	FirstName    string
	MidInitials  string
	Params       cv.ParamList
	Affiliations List[*Organization]
}

func (p *Person) SetContext(ctx *Context) {
	if p == nil || p.ctx == ctx {
		return
	}
	p.ctx = ctx
	p.Affiliations.SetContext(ctx)
}

func (p *Person) Equal(o *Person) bool {
	if p == nil || o == nil {
		return p == o
	}
	if p == o {
		return true
	}
	return p.Name == o.Name && p.LastName == o.LastName && p.FirstName == o.FirstName &&
		p.MidInitials == o.MidInitials && p.Params.Equal(o.Params) &&
		p.Affiliations.Equal(&o.Affiliations)
}

// Organization is a contact. Parent is the enclosing organization, if any.
type Organization struct {
	base
	ID     string
	Name   string
	Params cv.ParamList
	Parent *Organization
}

func (g *Organization) SetContext(ctx *Context) {
	if g == nil || g.ctx == ctx {
		return
	}
	g.ctx = ctx
	g.Parent.SetContext(ctx)
}

func (g *Organization) Equal(o *Organization) bool {
	if g == nil || o == nil {
		return g == o
	}
	if g == o {
		return true
	}
	return g.Name == o.Name && g.Params.Equal(o.Params) && g.Parent.Equal(o.Parent)
}

// Provider is the person or organization that delivered the document
type Provider struct {
	base
	ID          string
	Name        string
	Software    *AnalysisSoftware
	ContactRole *ContactRole
}

func (p *Provider) SetContext(ctx *Context) {
	if p == nil || p.ctx == ctx {
		return
	}
	p.ctx = ctx
	p.Software.SetContext(ctx)
	p.ContactRole.SetContext(ctx)
}

func (p *Provider) Equal(o *Provider) bool {
	if p == nil || o == nil {
		return p == o
	}
	return p == o || (p.Name == o.Name && p.Software.Equal(o.Software) && p.ContactRole.Equal(o.ContactRole))
}

// Sample is a biological sample. Sub-samples refer to other samples of
// the same document.
type Sample struct {
	base
	ID           string
	Name         string
	ContactRoles List[*ContactRole]
	SubSamples   List[*Sample]
	Params       cv.ParamList
}

func (s *Sample) SetContext(ctx *Context) {
	if s == nil || s.ctx == ctx {
		return
	}
	s.ctx = ctx
	s.ContactRoles.SetContext(ctx)
	s.SubSamples.SetContext(ctx)
}

func (s *Sample) Equal(o *Sample) bool {
	if s == nil || o == nil {
		return s == o
	}
	if s == o {
		return true
	}
	return s.Name == o.Name && s.Params.Equal(o.Params) &&
		s.ContactRoles.Equal(&o.ContactRoles) && s.SubSamples.Equal(&o.SubSamples)
}

// BibliographicReference is a publication about the analysis
type BibliographicReference struct {
	base
	ID          string
	Name        string
	Authors     string
	DOI         string
	Editor      string
	Issue       string
	Pages       string
	Publication string
	Publisher   string
	Title       string
	Volume      string
	Year        *int
}

func (b *BibliographicReference) SetContext(ctx *Context) {
	if b != nil {
		b.ctx = ctx
	}
}

func (b *BibliographicReference) Equal(o *BibliographicReference) bool {
	if b == nil || o == nil {
		return b == o
	}
	return b.Name == o.Name && b.Authors == o.Authors && b.DOI == o.DOI &&
		b.Editor == o.Editor && b.Issue == o.Issue && b.Pages == o.Pages &&
		b.Publication == o.Publication && b.Publisher == o.Publisher &&
		b.Title == o.Title && b.Volume == o.Volume && eqPtr(b.Year, o.Year)
}

func eqPtr[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

package identdata

import (
	"github.com/524D/mzidtool/internal/cv"
)

// SourceFile is an input file that was converted into this document
type SourceFile struct {
	base
	ID                          string
	Name                        string
	Location                    string
	ExternalFormatDocumentation string
	FileFormat                  cv.Param
	Params                      cv.ParamList
}

func (f *SourceFile) SetContext(ctx *Context) {
	if f != nil {
		f.ctx = ctx
	}
}

func (f *SourceFile) Equal(o *SourceFile) bool {
	if f == nil || o == nil {
		return f == o
	}
	return f.Name == o.Name && f.Location == o.Location &&
		f.ExternalFormatDocumentation == o.ExternalFormatDocumentation &&
		cv.ParamEqual(f.FileFormat, o.FileFormat) && f.Params.Equal(o.Params)
}

// SearchDatabase is a sequence database that was searched
type SearchDatabase struct {
	base
	ID                          string
	Name                        string
	Location                    string
	Version                     string
	ReleaseDate                 string
	NumDatabaseSequences        *int64
	NumResidues                 *int64
	ExternalFormatDocumentation string
	FileFormat                  cv.Param
	DatabaseName                cv.Param
	Params                      cv.ParamList
}

func (d *SearchDatabase) SetContext(ctx *Context) {
	if d != nil {
		d.ctx = ctx
	}
}

func (d *SearchDatabase) Equal(o *SearchDatabase) bool {
	if d == nil || o == nil {
		return d == o
	}
	return d.Name == o.Name && d.Location == o.Location && d.Version == o.Version &&
		d.ReleaseDate == o.ReleaseDate &&
		eqPtr(d.NumDatabaseSequences, o.NumDatabaseSequences) &&
		eqPtr(d.NumResidues, o.NumResidues) &&
		d.ExternalFormatDocumentation == o.ExternalFormatDocumentation &&
		cv.ParamEqual(d.FileFormat, o.FileFormat) &&
		cv.ParamEqual(d.DatabaseName, o.DatabaseName) &&
		d.Params.Equal(o.Params)
}

// SpectraData is a file of spectra that was searched
type SpectraData struct {
	base
	ID                          string
	Name                        string
	Location                    string
	ExternalFormatDocumentation string
	FileFormat                  cv.Param
	SpectrumIDFormat            cv.Param
}

func (d *SpectraData) SetContext(ctx *Context) {
	if d != nil {
		d.ctx = ctx
	}
}

func (d *SpectraData) Equal(o *SpectraData) bool {
	if d == nil || o == nil {
		return d == o
	}
	return d.Name == o.Name && d.Location == o.Location &&
		d.ExternalFormatDocumentation == o.ExternalFormatDocumentation &&
		cv.ParamEqual(d.FileFormat, o.FileFormat) &&
		cv.ParamEqual(d.SpectrumIDFormat, o.SpectrumIDFormat)
}

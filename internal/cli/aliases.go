package cli

import "github.com/tengjizhang/linkconv/internal/model"

type OutputFormat = model.OutputFormat
type Link = model.Link
type Section = model.Section
type SectionSummary = model.SectionSummary
type LinkPreview = model.LinkPreview

const (
	OutputTable = model.OutputTable
	OutputJSON  = model.OutputJSON
	OutputWide  = model.OutputWide
)

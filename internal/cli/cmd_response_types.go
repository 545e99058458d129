package cli

import "github.com/tengjizhang/linkconv/internal/emit"

type ConvertResponse struct {
	Empty   bool                   `json:"empty"`
	Formats map[emit.Format]string `json:"formats"`
	Links   []Link                 `json:"links"`
}

type FormatOutputResponse struct {
	Format emit.Format `json:"format"`
	Empty  bool        `json:"empty"`
	Output string      `json:"output"`
}

type SectionDetailResponse struct {
	Section    Section `json:"section"`
	Characters int     `json:"characters"`
	Links      int     `json:"links"`
}

type RemoveSectionResponse struct {
	RemovedSectionID int64 `json:"removed_section_id"`
}

type PreviewResponse struct {
	SectionID int64         `json:"section_id"`
	Links     []LinkPreview `json:"links"`
}

type ExportResponse struct {
	SectionID int64       `json:"section_id"`
	Format    emit.Format `json:"format"`
	Path      string      `json:"path,omitempty"`
	Empty     bool        `json:"empty"`
}

package store

import "github.com/tengjizhang/linkconv/internal/model"

type Section = model.Section
type SectionListOptions = model.SectionListOptions

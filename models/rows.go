package models

import "gorm.io/datatypes"

// RuleRow is the SQLite mirror row of a Rule.
type RuleRow struct {
	ID          string `gorm:"primaryKey"`
	URL         string `gorm:"index;not null"`
	Frequency   string `gorm:"not null"`
	Description string
	GetLinks    string
	StartDate   string `gorm:"index"`
}

func (RuleRow) TableName() string { return "archiving_rules" }

// PageRow is the SQLite mirror row of a Page.
type PageRow struct {
	ID          string `gorm:"primaryKey"`
	URL         string `gorm:"index;not null"`
	Date        string `gorm:"index"`
	Tags        datatypes.JSONSlice[string]
	Description string
}

func (PageRow) TableName() string { return "archived_pages" }

func NewRuleRow(r Rule) RuleRow {
	return RuleRow{
		ID:          r.ID,
		URL:         r.URL,
		Frequency:   string(r.Frequency),
		Description: r.Description,
		GetLinks:    r.GetLinks,
		StartDate:   r.StartDate,
	}
}

func (row RuleRow) Rule() Rule {
	return Rule{
		LinkedID:    "rule/" + row.ID,
		Type:        RuleType,
		ID:          row.ID,
		URL:         row.URL,
		Frequency:   Frequency(row.Frequency),
		Description: row.Description,
		GetLinks:    row.GetLinks,
		StartDate:   row.StartDate,
	}
}

func NewPageRow(p Page) PageRow {
	tags := datatypes.JSONSlice[string]{}
	tags = append(tags, p.Tags...)
	return PageRow{
		ID:          p.ID,
		URL:         p.URL,
		Date:        p.Date,
		Tags:        tags,
		Description: p.Description,
	}
}

func (row PageRow) Page() Page {
	return Page{
		LinkedID:    "page/" + row.ID,
		Type:        PageType,
		ID:          row.ID,
		URL:         row.URL,
		Date:        row.Date,
		Tags:        append([]string{}, row.Tags...),
		Description: row.Description,
	}
}

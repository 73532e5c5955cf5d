package domain

// TicketRecord represents a single parking citation as exported by the
// municipal enforcement system. All fields are carried as strings; the
// source sheets enforce no typing, so coercion is deferred to the
// analyses that need it.
type TicketRecord struct {
	TicketNumber string `json:"ticket_number" csv:"Ticket #"`
	Badge        string `json:"badge" csv:"Badge"`
	IssueDate    string `json:"issue_date" csv:"Issue Date"`
	IssueTime    string `json:"issue_time" csv:"IssueTime"`
	Plate        string `json:"plate" csv:"Plate"`
	State        string `json:"state" csv:"State"`
	Make         string `json:"make" csv:"Make"`
	Model        string `json:"model" csv:"Model"`
	Violation    string `json:"violation" csv:"Violation"`
	Description  string `json:"description" csv:"Description"`
	Location     string `json:"location" csv:"Location"`
	Meter        string `json:"meter" csv:"Meter"`
	Fine         string `json:"fine" csv:"Fine"`
	Penalty      string `json:"penalty" csv:"Penalty"`
}

// ColumnNames returns the canonical 14-column header in schema order.
// Sheet cells are assigned to these columns positionally during loading.
func ColumnNames() []string {
	return []string{
		"Ticket #", "Badge", "Issue Date", "IssueTime", "Plate", "State",
		"Make", "Model", "Violation", "Description", "Location", "Meter",
		"Fine", "Penalty",
	}
}

// Fields returns the record's values in canonical column order.
func (r TicketRecord) Fields() []string {
	return []string{
		r.TicketNumber, r.Badge, r.IssueDate, r.IssueTime, r.Plate, r.State,
		r.Make, r.Model, r.Violation, r.Description, r.Location, r.Meter,
		r.Fine, r.Penalty,
	}
}

// TimeBucket is one of the three fixed day segments used for
// time-of-day counting.
type TimeBucket string

const (
	BucketMorning   TimeBucket = "Morning"
	BucketAfternoon TimeBucket = "Afternoon"
	BucketEvening   TimeBucket = "Evening"
)

// TimeBuckets returns the buckets in display order.
func TimeBuckets() []TimeBucket {
	return []TimeBucket{BucketMorning, BucketAfternoon, BucketEvening}
}

// DescriptionFrequencyTable counts citations per violation description
// for each time-of-day bucket. Descriptions holds the distinct
// description set of the whole dataset, sorted; every bucket row shares
// the same columns, zero-filled where a description never occurs.
type DescriptionFrequencyTable struct {
	Descriptions []string                         `json:"descriptions"`
	Counts       map[TimeBucket]map[string]int    `json:"counts"`
}

// Count returns the number of citations with the given description in
// the given bucket. Unknown descriptions and buckets count zero.
func (t DescriptionFrequencyTable) Count(bucket TimeBucket, description string) int {
	row, ok := t.Counts[bucket]
	if !ok {
		return 0
	}
	return row[description]
}

// PlateFormat is one of the fixed license-plate format categories.
type PlateFormat string

const (
	// PlateFormatLLLDDDD is three uppercase letters followed by four digits.
	PlateFormatLLLDDDD PlateFormat = "3-letter+4-digit"
	// PlateFormatLLLDDD is three uppercase letters followed by three digits.
	PlateFormatLLLDDD PlateFormat = "3-letter+3-digit"
	// PlateFormatDDDLLL is three digits followed by three uppercase letters.
	PlateFormatDDDLLL PlateFormat = "3-digit+3-letter"
	// PlateFormatVanity is anything not matching one of the fixed formats,
	// including malformed or custom plates.
	PlateFormatVanity PlateFormat = "vanity"
)

// PlateFormats returns the categories in display order.
func PlateFormats() []PlateFormat {
	return []PlateFormat{
		PlateFormatLLLDDDD, PlateFormatLLLDDD, PlateFormatDDDLLL, PlateFormatVanity,
	}
}

// PlateFormatDistribution maps each plate-format category to the number
// of plates classified into it.
type PlateFormatDistribution map[PlateFormat]int

// Total returns the number of classified plates across all categories.
func (d PlateFormatDistribution) Total() int {
	total := 0
	for _, n := range d {
		total += n
	}
	return total
}

// DatasetSummary describes the loaded citation dataset at a glance.
type DatasetSummary struct {
	Files                int `json:"files"`
	Rows                 int `json:"rows"`
	DistinctDescriptions int `json:"distinct_descriptions"`
}

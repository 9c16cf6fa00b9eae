package api

// ImportSurveyType is the file type of a survey import.
type ImportSurveyType string

const (
	ImportSurveyLSS ImportSurveyType = "lss"
	ImportSurveyCSV ImportSurveyType = "csv"
	ImportSurveyTXT ImportSurveyType = "txt"
	ImportSurveyLSA ImportSurveyType = "lsa"
)

// ImportGroupType is the file type of a group import.
type ImportGroupType string

const (
	ImportGroupLSG ImportGroupType = "lsg"
	ImportGroupCSV ImportGroupType = "csv"
)

// NewSurveyType selects the page layout of a newly created survey.
type NewSurveyType string

const (
	NewSurveyAllOnOnePage    NewSurveyType = "A"
	NewSurveyGroupByGroup    NewSurveyType = "G"
	NewSurveySingleQuestions NewSurveyType = "S"
)

// ResponsesExportFormat is the output format of a responses export.
type ResponsesExportFormat string

const (
	ResponsesExportPDF  ResponsesExportFormat = "pdf"
	ResponsesExportCSV  ResponsesExportFormat = "csv"
	ResponsesExportXLS  ResponsesExportFormat = "xls"
	ResponsesExportDOC  ResponsesExportFormat = "doc"
	ResponsesExportJSON ResponsesExportFormat = "json"
)

// StatisticsExportFormat is the output format of a statistics export.
type StatisticsExportFormat string

const (
	StatisticsExportPDF  StatisticsExportFormat = "pdf"
	StatisticsExportXLS  StatisticsExportFormat = "xls"
	StatisticsExportHTML StatisticsExportFormat = "html"
)

// CompletionStatus filters exports by survey completion.
type CompletionStatus string

const (
	CompletionComplete   CompletionStatus = "complete"
	CompletionIncomplete CompletionStatus = "incomplete"
	CompletionAll        CompletionStatus = "all"
)

// HeadingType selects the column headings of a responses export.
type HeadingType string

const (
	HeadingCode        HeadingType = "code"
	HeadingFull        HeadingType = "full"
	HeadingAbbreviated HeadingType = "abbreviated"
)

// ResponseType selects long or short answer text in exports.
type ResponseType string

const (
	ResponseLong  ResponseType = "long"
	ResponseShort ResponseType = "short"
)

// TimelineAggregation is the aggregation level of response timelines.
type TimelineAggregation string

const (
	TimelineHour TimelineAggregation = "hour"
	TimelineDay  TimelineAggregation = "day"
)

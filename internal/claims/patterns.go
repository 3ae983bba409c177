package claims

import "regexp"

// numericPattern pairs a regexp capturing a bare numeric value (and an
// optional million/billion/trillion multiplier) with the unit label it
// implies (spec.md §4.2).
type numericPattern struct {
	re   *regexp.Regexp
	unit string
}

var numericPatterns = []numericPattern{
	{regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(?:percent|%)`), "percentage"},
	{regexp.MustCompile(`(?i)(?:Rs\.?|LKR|USD|\$)\s*(\d+(?:,\d{3})*(?:\.\d+)?)\s*(million|billion|trillion)?`), "money"},
	{regexp.MustCompile(`(?i)(\d+(?:,\d{3})*(?:\.\d+)?)\s*(million|billion|trillion)?\s*(?:rupees|dollars)`), "money"},
	{regexp.MustCompile(`(?i)(\d+(?:,\d{3})*(?:\.\d+)?)\s*(people|persons|deaths|cases|vehicles|units|tons|kg|km)`), "quantity"},
}

var increasePattern = regexp.MustCompile(`(?i)increas(?:ed?|ing)|rose?|risen|rising|grew|growing|growth|jump(?:ed)?|surge(?:d)?|surging|climb(?:ed)?|climbing`)
var decreasePattern = regexp.MustCompile(`(?i)decreas(?:ed?|ing)|fell|fallen|falling|drop(?:ped)?|dropping|declin(?:ed?|ing)|shr(?:a|u)nk|shrinking|plung(?:ed)?|plunging`)

var attributionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?is)(?P<speaker>[A-Z][a-z]+ [A-Z][a-z]+)\s+said\s+(?:that\s+)?["']?(?P<statement>.+?)["']?(?:\.|$)`),
	regexp.MustCompile(`(?is)according to\s+(?P<speaker>[A-Z][^,]+),?\s+(?P<statement>.+?)(?:\.|$)`),
	regexp.MustCompile(`(?is)(?P<speaker>[A-Z][a-z]+ [A-Z][a-z]+)\s+announced\s+(?:that\s+)?(?P<statement>.+?)(?:\.|$)`),
	regexp.MustCompile(`(?is)(?P<speaker>[A-Z][a-z]+ [A-Z][a-z]+)\s+stated\s+(?:that\s+)?["']?(?P<statement>.+?)["']?(?:\.|$)`),
}

var eventPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?P<event>floods?|flooding|earthquake|storm|cyclone|drought)\s+(?:hit|struck|affected)\s+(?P<location>[A-Z][a-z]+)`),
	regexp.MustCompile(`(?i)(?P<event>protests?|strikes?|demonstrations?)\s+(?:in|at|near)\s+(?P<location>[A-Z][a-z]+)`),
	regexp.MustCompile(`(?i)(?P<event>accident|crash|collision)\s+(?:on|at|near)\s+(?P<location>.+?)(?:,|\.|$)`),
}

var orgEntityPattern = regexp.MustCompile(`\b(Central Bank|CBSL|IMF|World Bank|Government|Ministry of [A-Z][a-z]+|[A-Z]{2,5})\b`)
var moneyEntityPattern = regexp.MustCompile(`(?i)(?:Rs\.?|LKR|USD|\$)\s*(\d+(?:,\d{3})*(?:\.\d+)?(?:\s*(?:million|billion|trillion))?)`)
var pctEntityPattern = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(?:percent|%)`)
var locationEntityPattern = regexp.MustCompile(`\b(?:in|at|near|from)\s+([A-Z][a-z]+(?:\s+[A-Z][a-z]+)?)\b`)

var sentenceSplitPattern = regexp.MustCompile(`(?:[.!?])\s+`)
var punctuationStripPattern = regexp.MustCompile(`[^\w\s%.]`)
var commaInNumberPattern = regexp.MustCompile(`(\d),(\d)`)

package formatter

// Pair is a single literal replacement. Tables are ordered slices of pairs
// because later entries operate on the output of earlier ones.
type Pair struct {
	Old string
	New string
}

// DefaultMaxLineLength is the widest subtitle line, in characters, that the
// post-processing wrapper produces.
const DefaultMaxLineLength = 18

// Substitutions maps colloquial phrases to their written form. Order matters:
// "想要" runs before "不想要" and "需要" before "很需要", so the longer
// entries never match. That is the observed behavior and is kept as is.
var Substitutions = []Pair{
	{"能夠", "能"},
	{"想要", "想"},
	{"上面", "上"},
	{"需要", "要"},
	{"大家", "你"},
	{"但是", "但"},
	{"哈哈哈", "XDD"},
	{"還是", "或是"},
	{"不想要", "不想"},
	{"很需要", "需要"},
	{"防", "預防"},
	{"東西", "產品"},
	{"覺得說", "覺得"},
	{"比如說", "比如"},
	{"我自己", "自己"},
	{"這件事情", "這件事"},
	{"大廠", "大品牌"},
	{"過程當中", "過程中"},
	{"情況之下", "情況下"},
	{"一件事情", "一件事"},
	{"大概", "大致上"},
	{"想像的那麼快", "想像地快"},
	{"沒有辦法", "無法"},
	{"底層", "底層的邏輯"},
}

// Fillers are discourse particles removed at the start of a block or next to
// a full-width comma.
var Fillers = []string{"那", "欸", "對吧", "嘛", "然後", "哦", "就是", "那當然"}

// Triggers are sentence openers that get a full-width comma after them when
// they start a block.
var Triggers = []string{"請問", "假設", "比如", "他說", "另外", "那一天", "我認為"}

// AIMarkers switch gendered pronouns to 它. Latin markers are matched
// against the upper-cased text.
var AIMarkers = []string{"AI", "LLM", "GPT", "MODEL", "模型"}

// gendered third-person pronouns and their neuter replacement
var (
	genderedPronouns = []string{"他", "她"}
	neuterPronoun    = "它"
)

// ASCIIPunctuation is the narrow table used by NormalizePunctuation.
var ASCIIPunctuation = []Pair{
	{",", "，"},
	{".", "。"},
	{"?", "？"},
	{"!", "！"},
}

// SRTPunctuation is the wider half-width to full-width table applied to
// recognized segment text before it is split into subtitle lines.
var SRTPunctuation = []Pair{
	{",", "，"},
	{".", "。"},
	{"!", "！"},
	{"?", "？"},
	{";", "；"},
	{":", "："},
	{"(", "（"},
	{")", "）"},
	{"[", "「"},
	{"]", "」"},
	{"{", "『"},
	{"}", "』"},
	{"\"", "」"},
	{"'", "」"},
	{"-", "－"},
	{"~", "～"},
}

const (
	// stripped once from the end of normalized text
	terminators = "，。？！"
	// stripped repeatedly when producing the clean single-line form
	trailingPunctuation = "，。！？、；：,.!?;:"
	// delimiters used by the transcription-path splitter
	splitDelimiters = "，？。"
	// preferred cut points for the hard wrapper
	wrapBreaks = "，。？！ "
)

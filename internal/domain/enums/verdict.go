package enums

// Verdict is a user's recorded opinion about another profile. A pair holds at
// most one verdict and it is immutable once set.
type Verdict string

const (
	VerdictNone    Verdict = ""
	VerdictLike    Verdict = "like"
	VerdictDislike Verdict = "dislike"
)

package lexicon

// JJBKeywords identify Brazilian jiu-jitsu events specifically.
var JJBKeywords = []string{
	"jiu-jitsu", "jiu jitsu", "jiujitsu", "bjj", "jjb", "ibjjf", "cfjjb",
	"brazilian", "no-gi", "nogi", "no gi",
}

// GrapplingKeywords identify grappling events that are not BJJ-specific.
var GrapplingKeywords = []string{
	"grappling", "adcc", "submission", "wrestling", "luta livre", "sub only",
}

// RejectedKeywords cover striking arts, other combat sports and unrelated
// disciplines. Under strict filtering any match discards the event, even when
// an accepted keyword is also present.
var RejectedKeywords = []string{
	"mma", "muay thai", "kickboxing", "kick boxing", "k-1", "boxing", "boxe",
	"karate", "taekwondo", "judo", "kung fu", "wushu", "sanda", "savate",
	"lethwei", "krav maga", "kendo", "fencing", "escrime", "sumo",
	"chess", "dance", "gymnastics", "esport", "e-sport",
}

// AcceptedKeywords is the union used by strict filtering.
var AcceptedKeywords = append(append([]string{}, JJBKeywords...), GrapplingKeywords...)

// Federations lists organizing-body acronyms in match order. Longer acronyms
// that contain shorter ones come first.
var Federations = []string{
	"IBJJF", "UAEJJF", "CFJJB", "SJJIF", "JJIF", "ADCC", "AJP", "NAGA", "UWW", "HYROX",
}

// Running sub-classification keywords.
var (
	TrailKeywords    = []string{"trail", "ultra-trail", "skyrace"}
	MarathonKeywords = []string{"marathon", "marathon de", "maratón", "maratona"}
	HalfKeywords     = []string{"half", "semi"}
	ShortKeywords    = []string{"half", "semi", "10k", "5k", "10 k", "5 k", "10km", "5km"}
)

package analyzer

// valence holds the base sentiment weight for each known term on a
// [-4, 4] scale. Weights are hand-tuned for product feedback text.
var valence = map[string]float64{
	// strong positive
	"amazing":     2.8,
	"awesome":     3.1,
	"beautiful":   2.9,
	"beautifully": 2.8,
	"best":        3.2,
	"brilliant":   2.8,
	"delight":     2.5,
	"delighted":   2.6,
	"delightful":  2.6,
	"excellent":   2.7,
	"fantastic":   2.6,
	"flawless":    2.7,
	"genius":      2.6,
	"great":       3.1,
	"incredible":  2.6,
	"love":        3.2,
	"loved":       2.9,
	"lovely":      2.8,
	"loves":       2.7,
	"masterpiece": 3.2,
	"outstanding": 3.0,
	"perfect":     2.7,
	"phenomenal":  2.9,
	"splendid":    2.7,
	"stellar":     2.8,
	"superb":      3.0,
	"wonderful":   2.7,
	"wow":         2.8,

	// mild positive
	"appreciate":  1.9,
	"appreciated": 2.0,
	"better":      1.9,
	"clean":       1.6,
	"clear":       1.2,
	"convenient":  1.7,
	"decent":      1.2,
	"easy":        1.9,
	"elegant":     2.1,
	"enjoy":       2.0,
	"enjoyed":     2.3,
	"fast":        1.1,
	"fine":        0.8,
	"fun":         2.3,
	"glad":        2.0,
	"good":        1.9,
	"handy":       1.6,
	"happy":       2.7,
	"helpful":     1.8,
	"helps":       1.6,
	"impressed":   2.2,
	"impressive":  2.3,
	"improved":    1.9,
	"improvement": 1.7,
	"intuitive":   1.8,
	"like":        1.5,
	"liked":       1.7,
	"likes":       1.5,
	"neat":        1.8,
	"nice":        1.8,
	"ok":          0.8,
	"okay":        0.9,
	"pleasant":    1.9,
	"pleasure":    2.4,
	"powerful":    1.9,
	"quick":       1.3,
	"recommend":   1.5,
	"recommended": 1.6,
	"reliable":    1.9,
	"responsive":  1.6,
	"robust":      1.7,
	"satisfied":   1.9,
	"satisfying":  2.0,
	"seamless":    1.9,
	"secure":      1.4,
	"simple":      1.2,
	"slick":       1.5,
	"smooth":      1.5,
	"solid":       1.6,
	"stable":      1.3,
	"support":     1.7,
	"thank":       1.9,
	"thanks":      1.9,
	"useful":      1.9,
	"valuable":    2.1,
	"win":         2.8,
	"won":         2.7,
	"works":       1.2,
	"worthwhile":  1.7,
	"yay":         2.4,

	// mild negative
	"annoying":     -1.8,
	"bloated":      -1.5,
	"bug":          -1.3,
	"buggy":        -1.9,
	"cluttered":    -1.4,
	"confusing":    -1.2,
	"crash":        -1.6,
	"crashed":      -1.7,
	"crashes":      -1.8,
	"difficult":    -1.5,
	"dislike":      -1.6,
	"disliked":     -1.7,
	"expensive":    -0.8,
	"flaw":         -1.4,
	"flawed":       -1.9,
	"flaws":        -1.4,
	"fragile":      -1.3,
	"freeze":       -1.2,
	"freezes":      -1.3,
	"glitch":       -1.4,
	"glitches":     -1.5,
	"glitchy":      -1.7,
	"hard":         -0.4,
	"inconvenient": -1.6,
	"insecure":     -1.7,
	"issue":        -1.1,
	"issues":       -1.1,
	"lacking":      -1.4,
	"lacks":        -1.3,
	"lag":          -1.1,
	"laggy":        -1.5,
	"lags":         -1.2,
	"lose":         -1.9,
	"mediocre":     -0.9,
	"meh":          -0.9,
	"missing":      -1.1,
	"overpriced":   -1.7,
	"poor":         -1.9,
	"problem":      -1.7,
	"problems":     -1.7,
	"regret":       -1.9,
	"sad":          -2.1,
	"slow":         -1.1,
	"ugh":          -1.8,
	"unreliable":   -1.9,
	"unresponsive": -1.7,
	"unstable":     -1.6,
	"upset":        -1.8,
	"useless":      -1.8,
	"weak":         -1.6,

	// strong negative
	"abysmal":       -2.7,
	"angry":         -2.3,
	"atrocious":     -2.8,
	"awful":         -2.0,
	"bad":           -2.5,
	"broken":        -1.6,
	"catastrophe":   -2.5,
	"crap":          -2.2,
	"disappointed":  -2.1,
	"disappointing": -2.2,
	"disaster":      -2.4,
	"disgusting":    -2.8,
	"dissatisfied":  -2.0,
	"dreadful":      -2.5,
	"error":         -1.7,
	"errors":        -1.8,
	"fail":          -2.3,
	"failed":        -2.3,
	"fails":         -1.9,
	"failure":       -2.3,
	"fraud":         -2.9,
	"frustrated":    -2.1,
	"frustrating":   -2.0,
	"garbage":       -2.2,
	"gross":         -1.9,
	"hate":          -2.7,
	"hated":         -2.6,
	"hates":         -2.1,
	"horrible":      -2.5,
	"nightmare":     -2.6,
	"pain":          -1.9,
	"painful":       -2.0,
	"pathetic":      -2.3,
	"scam":          -2.6,
	"suck":          -1.9,
	"sucked":        -1.9,
	"sucks":         -2.0,
	"terrible":      -2.1,
	"trash":         -2.2,
	"ugly":          -2.2,
	"unpleasant":    -1.9,
	"waste":         -1.8,
	"wasted":        -2.0,
	"worse":         -2.1,
	"worst":         -3.1,
	"worthless":     -2.3,
}

// negations flip the sign of a sentiment word they precede. Both the
// apostrophe and bare contraction spellings are listed because
// tokenization preserves interior apostrophes but users often drop them.
var negations = map[string]bool{
	"ain't":     true,
	"aint":      true,
	"aren't":    true,
	"arent":     true,
	"barely":    true,
	"can't":     true,
	"cannot":    true,
	"cant":      true,
	"couldn't":  true,
	"couldnt":   true,
	"didn't":    true,
	"didnt":     true,
	"doesn't":   true,
	"doesnt":    true,
	"don't":     true,
	"dont":      true,
	"hadn't":    true,
	"hadnt":     true,
	"hardly":    true,
	"hasn't":    true,
	"hasnt":     true,
	"haven't":   true,
	"havent":    true,
	"isn't":     true,
	"isnt":      true,
	"neither":   true,
	"never":     true,
	"no":        true,
	"none":      true,
	"nor":       true,
	"not":       true,
	"nothing":   true,
	"nowhere":   true,
	"rarely":    true,
	"scarcely":  true,
	"seldom":    true,
	"shouldn't": true,
	"shouldnt":  true,
	"wasn't":    true,
	"wasnt":     true,
	"weren't":   true,
	"werent":    true,
	"without":   true,
	"won't":     true,
	"wont":      true,
	"wouldn't":  true,
	"wouldnt":   true,
}

// boosters intensify (positive entry) or dampen (negative entry) the
// valence of a following sentiment word.
var boosters = map[string]float64{
	"absolutely":    boostIncrement,
	"amazingly":     boostIncrement,
	"completely":    boostIncrement,
	"considerably":  boostIncrement,
	"decidedly":     boostIncrement,
	"deeply":        boostIncrement,
	"enormously":    boostIncrement,
	"entirely":      boostIncrement,
	"especially":    boostIncrement,
	"exceptionally": boostIncrement,
	"extremely":     boostIncrement,
	"fabulously":    boostIncrement,
	"fully":         boostIncrement,
	"greatly":       boostIncrement,
	"highly":        boostIncrement,
	"hugely":        boostIncrement,
	"incredibly":    boostIncrement,
	"intensely":     boostIncrement,
	"majorly":       boostIncrement,
	"more":          boostIncrement,
	"most":          boostIncrement,
	"particularly":  boostIncrement,
	"purely":        boostIncrement,
	"quite":         boostIncrement,
	"really":        boostIncrement,
	"remarkably":    boostIncrement,
	"so":            boostIncrement,
	"substantially": boostIncrement,
	"thoroughly":    boostIncrement,
	"totally":       boostIncrement,
	"tremendously":  boostIncrement,
	"truly":         boostIncrement,
	"unbelievably":  boostIncrement,
	"unusually":     boostIncrement,
	"utterly":       boostIncrement,
	"very":          boostIncrement,

	"almost":       -boostIncrement,
	"barely":       -boostIncrement,
	"hardly":       -boostIncrement,
	"kinda":        -boostIncrement,
	"less":         -boostIncrement,
	"little":       -boostIncrement,
	"marginally":   -boostIncrement,
	"occasionally": -boostIncrement,
	"partly":       -boostIncrement,
	"scarcely":     -boostIncrement,
	"slightly":     -boostIncrement,
	"somewhat":     -boostIncrement,
	"sorta":        -boostIncrement,
}

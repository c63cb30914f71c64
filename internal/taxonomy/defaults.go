package taxonomy

import "github.com/ecoyoung/packform/internal/domain"

// defaultPatterns is the primary pattern table. Order matters: it is the
// standardization fallback order and the order evidence is reported in.
var defaultPatterns = []PatternSet{
	{
		Category: domain.CategoryCapsule,
		Rules: []string{
			`\bcapsule\b`, `\bcapsules\b`, `\bcap\b`, `\bcaps\b`,
			`\bgelcap\b`, `\bgelcaps\b`,
			`\b胶囊\b`, `\b软胶囊\b`, `\b硬胶囊\b`, `\b肠溶胶囊\b`,
			`\b缓释胶囊\b`, `\b控释胶囊\b`,
		},
	},
	{
		Category: domain.CategoryTablet,
		Rules: []string{
			`\btablet\b`, `\bcaplet\b`, `\btablets\b`, `\btab\b`, `\btabs\b`,
			`\bchewable\b`, `\bchewables\b`, `\bsublingual\b`, `\benteric\b`, `\bcaplets\b`,
			`\b片剂\b`, `\b片\b`, `\b咀嚼片\b`, `\b含片\b`,
			`\b舌下片\b`, `\b肠溶片\b`, `\b缓释片\b`, `\b控释片\b`,
		},
	},
	{
		Category: domain.CategoryPowder,
		Rules: []string{
			`\bpowder\b`, `\bpowders\b`, `\bpwd\b`, `\bgranule\b`,
			`\bgranules\b`, `\bdrink\b`, `\bdrinks\b`, `\bcrystal\b`,
			`\b粉剂\b`, `\b粉末\b`, `\b冲剂\b`, `\b散剂\b`,
			`\b颗粒剂\b`, `\b冲饮\b`, `\b饮品\b`,
		},
	},
	{
		Category: domain.CategoryGummy,
		Rules: []string{
			`\bgummy\b`, `\bgummies\b`,
			`\bcandy\b`, `\bcandies\b`, `\bjelly\b`, `\bjellies\b`,
			`软糖`, `咀嚼糖`, `果冻`, `糖果`,
			`口香糖`, `咀嚼片`,
		},
	},
	{
		Category: domain.CategoryDrop,
		Rules: []string{
			`\bdrop\b`, `\bdrops\b`, `\btincture\b`, `\btinctures\b`,
			`\bessence\b`, `\bessences\b`, `\bfl ozs\b`,
			`\bliquid\s*drop\b`, `\bliquid\s*drops\b`,
			`滴剂`, `滴液`, `酊剂`, `精华`,
			`精华液`, `液体滴剂`, `液体滴液`,
		},
	},
	{
		Category: domain.CategorySoftgel,
		Rules: []string{
			`\bsoftgel\b`, `\bsoftgels\b`, `\bsoft\s*gel\b`,
			`\bgel\b`, `\bgels\b`, `\bgelatin\b`,
			`软胶囊`, `软胶`, `明胶`,
		},
	},
	{
		Category: domain.CategoryLiquid,
		Rules: []string{
			`\bliquid\b`, `\bliquids\b`, `\bsyrup\b`, `\bsyrups\b`,
			`\bsuspension\b`, `\bsuspensions\b`, `\belixir\b`,
			`\bsolution\b`, `\bsolutions\b`, `\bemulsion\b`,
			`液体`, `口服液`, `糖浆`, `混悬液`,
			`溶液`, `乳剂`, `水剂`,
		},
	},
	{
		Category: domain.CategoryCream,
		Rules: []string{
			`\bcream\b`, `\bcreams\b`, `\bointment\b`, `\bointments\b`,
			`乳膏`, `霜剂`, `软膏`, `膏剂`,
		},
	},
	{
		Category: domain.CategorySpray,
		Rules: []string{
			`\bspray\b`, `\bsprays\b`, `\binhaler\b`, `\binhalers\b`,
			`喷雾`, `喷剂`, `吸入器`, `吸入剂`,
		},
	},
	{
		Category: domain.CategoryLotion,
		Rules: []string{
			`\blotion\b`, `\blotions\b`,
			`乳液`, `洗剂`,
		},
	},
	{
		Category: domain.CategoryPatch,
		Rules: []string{
			`\bpatch\b`, `\bpatches\b`,
			`贴剂`, `贴片`, `贴膏`,
		},
	},
	{
		Category: domain.CategorySuppository,
		Rules: []string{
			`\bsuppository\b`, `\bsuppositories\b`,
			`栓剂`, `坐药`,
		},
	},
	{
		Category: domain.CategoryOil,
		Rules: []string{
			`\boil\b`, `\boils\b`,
			`\bessential\s*oil\b`, `\bessential\s*oils\b`,
			`\bfish\s*oil\b`, `\bomega\s*oil\b`,
			`\bcarrier\s*oil\b`, `\bcarrier\s*oils\b`,
			`油`, `精油`, `鱼油`, `植物油`, `橄榄油`,
			`椰子油`, `亚麻籽油`, `月见草油`,
		},
	},
}

// defaultOthers are the sub-patterns that contribute a single Others signal.
// They are evaluated after the whole primary table.
var defaultOthers = []SubPatternSet{
	{Name: "Injection", Rules: []string{`\binjection\b`, `\binjections\b`, `注射剂`, `针剂`}},
	{Name: "Nasal", Rules: []string{`\bnasal\b`, `鼻用`, `鼻腔`}},
	{Name: "Topical", Rules: []string{`\btopical\b`, `外用`, `局部`}},
	{Name: "External", Rules: []string{`\bexternal\b`, `外用`, `外部`}},
	{Name: "Bag", Rules: []string{`\bbag\b`, `\bbags\b`, `袋装`, `包装`}},
	{Name: "Teabag", Rules: []string{`\bteabag\b`, `\bteabags\b`, `茶包`, `袋泡茶`}},
	{Name: "Strip", Rules: []string{`\bstrip\b`, `\bstrips\b`, `条装`, `条剂`}},
	{Name: "Stick", Rules: []string{`\bstick\b`, `\bsticks\b`, `棒状`, `棒剂`}},
}

// defaultAliases are the known spellings of each category's label. Every spelling
// is registered verbatim and in its lower, Title and UPPER forms.
var defaultAliases = []AliasSet{
	{
		Category: domain.CategoryCapsule,
		Spellings: []string{
			"capsule", "capsules", "cap", "caps", "capsu",
			"gelcap", "gelcaps", "VegCap",
		},
	},
	{
		Category: domain.CategoryTablet,
		Spellings: []string{
			"tablet", "tablets", "tab", "tabs",
			"caplet", "caplets", "chewable", "chewables",
			"chew", "chews", "sublingual", "enteric",
		},
	},
	{
		Category: domain.CategoryPowder,
		Spellings: []string{
			"powder", "powders", "Powdered", "granule", "granules",
			"crystal", "crystals", "pwd",
		},
	},
	{
		Category:  domain.CategoryGummy,
		Spellings: []string{"gummy", "gummies", "jelly", "jellies", "gumm"},
	},
	{
		Category: domain.CategoryDrop,
		Spellings: []string{
			"drop", "drops", "tincture", "tinctures", "fl oz", "fl. oz.",
		},
	},
	{
		Category:  domain.CategorySoftgel,
		Spellings: []string{"softgel", "softgels", "sof", "gel", "gels"},
	},
	{
		Category: domain.CategoryLiquid,
		Spellings: []string{
			"liquid", "liquids", "syrup", "syrups",
			"solution", "solutions", "suspension", "suspensions",
		},
	},
	{
		Category:  domain.CategoryCream,
		Spellings: []string{"cream", "creams", "ointment", "ointments"},
	},
	{
		Category:  domain.CategorySpray,
		Spellings: []string{"spray", "sprays", "inhaler", "inhalers"},
	},
	{
		Category:  domain.CategoryLotion,
		Spellings: []string{"lotion", "lotions"},
	},
	{
		Category:  domain.CategoryPatch,
		Spellings: []string{"patch", "patches"},
	},
	{
		Category:  domain.CategorySuppository,
		Spellings: []string{"suppository", "suppositories"},
	},
	{
		Category: domain.CategoryOil,
		Spellings: []string{
			"oil", "oils", "essential oil", "essential oils",
			"fish oil", "omega oil", "carrier oil", "carrier oils",
		},
	},
	{
		Category: domain.CategoryOthers,
		Spellings: []string{
			"bag", "bags", "Tea bags", "teabag", "teabags",
			"strip", "strips", "strippy", "stick", "sticks",
			"other", "others",
		},
	},
}

package decks

// DefaultMyDecks returns the built-in own-deck catalog.
func DefaultMyDecks() []string {
	return []string{
		"刻魔蛇眼",
		"刻魔尤貝爾",
		"白森刻魔聖徒",
		"刻魔珠淚",
		"肅聲",
		"天盃龍",
		"閃刀姬",
	}
}

// DefaultOppDecks returns the built-in opponent-deck catalog.
func DefaultOppDecks() []string {
	return []string{
		"刻魔尤貝爾",
		"刻魔聖徒蛇眼",
		"刻魔白森聖徒",
		"刻魔珠淚",
		"60GS",
		"天盃龍",
		"反主流",
		"大法師",
		"60烙印",
		"霸王幻奏",
		"白銀城",
		"刻魔聖徒消防隊",
		"龍輝巧",
		"英雄",
		"魔式甜點",
		"肅聲",
		"百夫長",
		"六花",
		"魔術師",
		"人偶FTK",
		"荷魯斯強攻",
		"神碑",
		"雙子雷精靈",
		"光道FTK",
		"天威相劍",
	}
}

package model

type Reward struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Cost  int    `json:"cost"`
	Icon  string `json:"icon"`
}

// DefaultRewards returns a fresh copy of the built-in reward catalog.
func DefaultRewards() []Reward {
	return []Reward{
		{ID: "r_1", Title: "看电视30分钟", Cost: 50, Icon: "📺"},
		{ID: "r_2", Title: "购买小玩具", Cost: 300, Icon: "🧸"},
		{ID: "r_3", Title: "去公园玩", Cost: 150, Icon: "🛝"},
		{ID: "r_4", Title: "吃个冰淇淋", Cost: 100, Icon: "🍦"},
		{ID: "r_5", Title: "玩手机游戏", Cost: 80, Icon: "🎮"},
		{ID: "r_6", Title: "免做一次家务", Cost: 200, Icon: "🎫"},
	}
}

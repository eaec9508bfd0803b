package model

// Preset is a ready-made task a parent can publish with one tap.
type Preset struct {
	Icon        string `json:"icon"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// SlotConfig describes one time slot of the daily plan.
type SlotConfig struct {
	Slot    TimeSlot `json:"slot"`
	Label   string   `json:"label"`
	Icon    string   `json:"icon"`
	Presets []Preset `json:"presets"`
}

// DailyPlanPoints is the reward every daily-plan task is published with.
const DailyPlanPoints = 10

var TaskPresets = []Preset{
	{Icon: "📚", Title: "完成作业", Description: "认真完成学校布置的作业，字迹工整"},
	{Icon: "🧹", Title: "整理房间", Description: "把玩具归位，整理床铺"},
	{Icon: "🎹", Title: "乐器练习", Description: "专注练习30分钟"},
	{Icon: "🦷", Title: "早晚刷牙", Description: "刷够2分钟，保持牙齿亮白"},
	{Icon: "🏃", Title: "户外运动", Description: "跳绳、跑步或打球30分钟"},
	{Icon: "🥛", Title: "喝水打卡", Description: "今天喝够8杯水了吗？"},
	{Icon: "🍽️", Title: "光盘行动", Description: "吃饭不挑食，把碗里的饭吃干净"},
	{Icon: "📖", Title: "阅读时光", Description: "安静阅读绘本或书籍20分钟"},
}

var TimeSlotPresets = []SlotConfig{
	{
		Slot: SlotMorning, Label: "活力早晨", Icon: "🌅",
		Presets: []Preset{
			{Icon: "🦷", Title: "刷牙洗脸", Description: "把自己收拾得干干净净"},
			{Icon: "🥛", Title: "喝杯温水", Description: "晨起一杯水，健康一整天"},
			{Icon: "🎒", Title: "整理书包", Description: "检查课本作业是否带齐"},
			{Icon: "🥪", Title: "吃光早餐", Description: "补充能量，不挑食"},
		},
	},
	{
		Slot: SlotNoon, Label: "午间时光", Icon: "☀️",
		Presets: []Preset{
			{Icon: "🍚", Title: "午餐光盘", Description: "珍惜粮食，吃得饱饱的"},
			{Icon: "😴", Title: "午休小憩", Description: "休息30分钟，下午更有精神"},
			{Icon: "👀", Title: "眼保健操", Description: "保护视力，放松眼睛"},
		},
	},
	{
		Slot: SlotAfternoon, Label: "充实午后", Icon: "🌤️",
		Presets: []Preset{
			{Icon: "📚", Title: "完成作业", Description: "专注高效，字迹工整"},
			{Icon: "🏃", Title: "户外运动", Description: "跳绳/跑步/球类运动30分钟"},
			{Icon: "🎹", Title: "兴趣练习", Description: "练琴/画画/书法"},
			{Icon: "🧹", Title: "家务帮手", Description: "帮忙倒垃圾或扫地"},
		},
	},
	{
		Slot: SlotEvening, Label: "温馨夜晚", Icon: "🌙",
		Presets: []Preset{
			{Icon: "🚿", Title: "洗澡洗漱", Description: "讲究卫生，香喷喷"},
			{Icon: "📖", Title: "亲子阅读", Description: "和爸爸妈妈一起看书"},
			{Icon: "👗", Title: "准备衣物", Description: "准备好明天的衣服"},
			{Icon: "🛌", Title: "按时睡觉", Description: "早睡早起身体好"},
		},
	},
}

// FindSlotPreset looks up a preset of the given slot by title.
func FindSlotPreset(slot TimeSlot, title string) (Preset, bool) {
	for _, cfg := range TimeSlotPresets {
		if cfg.Slot != slot {
			continue
		}
		for _, p := range cfg.Presets {
			if p.Title == title {
				return p, true
			}
		}
	}
	return Preset{}, false
}

var ParentAvatars = []string{
	"https://api.dicebear.com/9.x/notionists/svg?seed=Felix&backgroundColor=e5e7eb",
	"https://api.dicebear.com/9.x/notionists/svg?seed=Aneka&backgroundColor=ffedd5",
	"https://api.dicebear.com/9.x/notionists/svg?seed=Jude&backgroundColor=dbeafe",
	"https://api.dicebear.com/9.x/notionists/svg?seed=Robert&backgroundColor=f3f4f6",
}

var ChildAvatars = []string{
	"https://api.dicebear.com/9.x/notionists/svg?seed=Milo&backgroundColor=ffedd5",
	"https://api.dicebear.com/9.x/notionists/svg?seed=Ginger&backgroundColor=fee2e2",
	"https://api.dicebear.com/9.x/notionists/svg?seed=Scooter&backgroundColor=dcfce7",
	"https://api.dicebear.com/9.x/notionists/svg?seed=Cookie&backgroundColor=fff7ed",
	"https://api.dicebear.com/9.x/notionists/svg?seed=Bear&backgroundColor=fef3c7",
}

package festival

// solarFestivals lists the fixed Gregorian festivals in calendar order.
// July 1 and December 20 get special handling for the reunification
// anniversaries; see fixedSolar.
var solarFestivals = []struct {
	MonthDay string // "MM-DD"
	Name     string
}{
	{"01-10", "中国人民警察节"},
	{"02-14", "情人节"},
	{"03-08", "妇女节"},
	{"03-12", "植树节"},
	{"03-15", "消费者权益日"},
	{"04-01", "愚人节"},
	{"04-22", "世界地球日"},
	{"04-23", "世界读书日"},
	{"05-04", "青年节"},
	{"05-12", "护士节"},
	{"06-01", "儿童节"},
	{"06-05", "世界环境日"},
	{"06-26", "国际禁毒日"},
	{"07-01", "建党节"},
	{"07-07", "七七事变"},
	{"08-01", "建军节"},
	{"08-15", "日本投降日"},
	{"09-03", "抗战胜利纪念日"},
	{"09-10", "教师节"},
	{"09-18", "九一八事变"},
	{"09-30", "烈士纪念日"},
	{"10-01", "国庆节"},
	{"10-10", "辛亥革命纪念日"},
	{"10-24", "程序员节"},
	{"10-25", "台湾光复纪念日"},
	{"10-31", "万圣夜"},
	{"11-08", "记者节"},
	{"12-13", "国家公祭日"},
	{"12-20", "澳门回归纪念日"},
	{"12-24", "平安夜"},
	{"12-25", "圣诞节"},
}

// lunarFestivals maps (lunar month, lunar day) to the festival name. Leap
// months come from the oracle as negative month numbers and never match.
var lunarFestivals = map[[2]int]string{
	{1, 15}:  "元宵节",
	{2, 2}:   "龙抬头",
	{3, 3}:   "上巳节",
	{5, 5}:   "端午节",
	{7, 7}:   "七夕节",
	{7, 15}:  "中元节",
	{8, 15}:  "中秋节",
	{9, 9}:   "重阳节",
	{10, 1}:  "寒衣节",
	{10, 15}: "下元节",
	{12, 8}:  "腊八节",
	{12, 16}: "尾牙",
	{12, 23}: "北方小年",
	{12, 24}: "南方小年",
}

// shuJiuNames are the nine nine-day winter periods; only a name from this
// set marks a period start worth emitting.
var shuJiuNames = map[string]bool{
	"一九": true,
	"二九": true,
	"三九": true,
	"四九": true,
	"五九": true,
	"六九": true,
	"七九": true,
	"八九": true,
	"九九": true,
}

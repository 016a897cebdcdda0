package encoder

import (
	"github.com/ryan-gang/bookmark-convert/internal/bookmark"
)

// Fields are the record field names in output column order.
var Fields = []string{
	"title", "url", "domain", "folder", "add_date",
	"last_modified", "bookmark_type", "has_icon", "icon",
}

// Locales lists the supported header languages.
var Locales = []string{"en", "zh"}

type labels struct {
	columns    map[string]string
	sheet      string
	statsSheet string
	statItem   string
	statCount  string
	total      string
	website    string
	local      string
	other      string
	url        string
	folder     string
	kind       string
	summary    string
}

var localeLabels = map[string]labels{
	"en": {
		columns: map[string]string{
			"title":         "Title",
			"url":           "URL",
			"domain":        "Domain",
			"folder":        "Folder",
			"add_date":      "Added",
			"last_modified": "Last Modified",
			"bookmark_type": "Type",
			"has_icon":      "Has Icon",
			"icon":          "Icon",
		},
		sheet:      "Bookmarks",
		statsSheet: "Statistics",
		statItem:   "Item",
		statCount:  "Count",
		total:      "Total bookmarks",
		website:    "Websites",
		local:      "Local files",
		other:      "Other",
		url:        "URL",
		folder:     "Folder",
		kind:       "Type",
		summary:    "Total: %d bookmarks",
	},
	"zh": {
		columns: map[string]string{
			"title":         "标题",
			"url":           "网址",
			"domain":        "域名",
			"folder":        "文件夹路径",
			"add_date":      "添加日期",
			"last_modified": "最后修改",
			"bookmark_type": "书签类型",
			"has_icon":      "是否有图标",
			"icon":          "图标数据",
		},
		sheet:      "书签列表",
		statsSheet: "统计信息",
		statItem:   "统计项",
		statCount:  "数量",
		total:      "总书签数",
		website:    "网页书签",
		local:      "本地文件",
		other:      "其他类型",
		url:        "网址",
		folder:     "路径",
		kind:       "类型",
		summary:    "总计: %d 个书签",
	},
}

func labelsFor(locale string) labels {
	if l, ok := localeLabels[locale]; ok {
		return l
	}
	return localeLabels["en"]
}

// fieldValues renders r in Fields order.
func fieldValues(r bookmark.Record) []string {
	return []string{
		r.Title,
		r.URL,
		r.Domain,
		r.Folder,
		r.AddDate,
		r.LastModified,
		string(r.Type),
		boolText(r.HasIcon),
		r.Icon,
	}
}

func boolText(b bool) string {
	if b {
		return "True"
	}
	return "False"
}

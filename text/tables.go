package text

import (
	"unicode"

	"lfmt/spacing"
)

// Scripts written without inter-word spaces.
var cjkScripts = []*unicode.RangeTable{
	unicode.Han,
	unicode.Hiragana,
	unicode.Katakana,
	unicode.Hangul,
	unicode.Bopomofo,
}

// Full-width and ideographic punctuation. Nothing is ever spaced away from it.
var cjkPunct = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x3000, Hi: 0x303f, Stride: 1}, // CJK symbols and punctuation
		{Lo: 0xfe10, Hi: 0xfe1f, Stride: 1}, // vertical forms
		{Lo: 0xfe30, Hi: 0xfe6f, Stride: 1}, // compatibility and small forms
		{Lo: 0xff01, Hi: 0xff0f, Stride: 1}, // ！ to ／
		{Lo: 0xff1a, Hi: 0xff20, Stride: 1}, // ： to ＠
		{Lo: 0xff3b, Hi: 0xff40, Stride: 1}, // ［ to ｀
		{Lo: 0xff5b, Hi: 0xff65, Stride: 1}, // ｛ to ･
	},
}

const whitespace = spacing.Whitespace

// Package currency はWooCommerceのprice_htmlから通貨記号を取り出し、
// 表示用の価格文字列を組み立てる。
package currency

import (
	"fmt"
	"html"
	"regexp"
	"strconv"
	"strings"
)

// 記号が取れないときの既定値
const DefaultSymbol = "₹"

const (
	PositionBefore = "before"
	PositionAfter  = "after"
)

// woocommerce-Price-currencySymbol のspan中身を取り出す
var symbolRe = regexp.MustCompile(`<span[^>]*class="[^"]*woocommerce-Price-currencySymbol[^"]*"[^>]*>(.*?)</span>`)

// タグ残りを落とす
var tagRe = regexp.MustCompile(`<[^>]*>`)

// ExtractSymbol はprice_htmlから通貨記号をデコードして返す。
// パターンが無い・壊れている場合は既定値を返し、失敗はしない。
func ExtractSymbol(priceHTML string) string {
	if priceHTML == "" {
		return DefaultSymbol
	}

	m := symbolRe.FindStringSubmatch(priceHTML)
	if m == nil {
		return DefaultSymbol
	}

	// &#8377; や &amp; をデコード
	symbol := html.UnescapeString(m[1])
	symbol = tagRe.ReplaceAllString(symbol, "")
	symbol = strings.TrimSpace(symbol)

	if symbol == "" {
		return DefaultSymbol
	}
	return symbol
}

// Format は金額を小数2桁にし、positionに応じて記号を前後へ付ける。
func Format(amount float64, symbol string, position string) string {
	if symbol == "" {
		symbol = DefaultSymbol
	}

	fixed := fmt.Sprintf("%.2f", amount)

	if position == PositionAfter {
		return fixed + symbol
	}
	return symbol + fixed
}

// FormatString はWooCommerceの文字列価格用。数値にできなければ0扱い。
func FormatString(price string, symbol string, position string) string {
	f, err := strconv.ParseFloat(price, 64)
	if err != nil {
		f = 0
	}
	return Format(f, symbol, position)
}

// Package validator はフォームごとの宣言的スキーマ。
// クライアント側と同じルールをAPI側でも適用する。
package validator

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Ruleは1フィールドの検証。問題なければ空文字、あればメッセージを返す。
// formはクロスフィールド検証（パスワード確認など）用。
type Rule func(value string, form map[string]string) string

type Field struct {
	Name  string
	Rules []Rule
}

type Schema struct {
	Fields []Field
}

// SafeParse の結果。throwしない。
type Result struct {
	OK     bool
	Data   map[string]string
	Errors map[string]string
}

// SafeParse は全フィールドを検証し、最初に失敗したルールのメッセージを
// フィールドごとに集める。成功時はtrim済みの値を返す。
func (s Schema) SafeParse(form map[string]string) Result {
	errs := map[string]string{}
	data := map[string]string{}

	for _, f := range s.Fields {
		value := strings.TrimSpace(form[f.Name])

		for _, rule := range f.Rules {
			if msg := rule(value, form); msg != "" {
				errs[f.Name] = msg
				break
			}
		}

		if _, bad := errs[f.Name]; !bad {
			data[f.Name] = value
		}
	}

	if len(errs) > 0 {
		return Result{OK: false, Errors: errs}
	}
	return Result{OK: true, Data: data}
}

// JSONボディ（map[string]any）をスキーマ入力へ変換する
func FormFromJSON(body map[string]any) map[string]string {
	form := make(map[string]string, len(body))
	for k, v := range body {
		switch t := v.(type) {
		case string:
			form[k] = t
		case float64:
			form[k] = strconv.FormatFloat(t, 'f', -1, 64)
		case bool:
			form[k] = strconv.FormatBool(t)
		case nil:
			form[k] = ""
		default:
			form[k] = fmt.Sprintf("%v", t)
		}
	}
	return form
}

// =====================
// ルール
// =====================

func Required(msg string) Rule {
	return func(v string, _ map[string]string) string {
		if v == "" {
			return msg
		}
		return ""
	}
}

func MinLen(n int, msg string) Rule {
	return func(v string, _ map[string]string) string {
		if v != "" && len(v) < n {
			return msg
		}
		return ""
	}
}

func MaxLen(n int, msg string) Rule {
	return func(v string, _ map[string]string) string {
		if len(v) > n {
			return msg
		}
		return ""
	}
}

func Pattern(re *regexp.Regexp, msg string) Rule {
	return func(v string, _ map[string]string) string {
		if v != "" && !re.MatchString(v) {
			return msg
		}
		return ""
	}
}

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func Email(msg string) Rule {
	return Pattern(emailRe, msg)
}

// 他フィールドと同値か（パスワード確認用）
func EqualsField(other string, msg string) Rule {
	return func(v string, form map[string]string) string {
		if v != strings.TrimSpace(form[other]) {
			return msg
		}
		return ""
	}
}

// condFieldがtrueのときだけ必須（配送先別指定など）
func RequiredIf(condField string, msg string) Rule {
	return func(v string, form map[string]string) string {
		if strings.TrimSpace(form[condField]) == "true" && v == "" {
			return msg
		}
		return ""
	}
}

// 整数の範囲チェック（評価の1〜5など）
func IntRange(min int, max int, msg string) Rule {
	return func(v string, _ map[string]string) string {
		if v == "" {
			return ""
		}
		i, err := strconv.Atoi(v)
		if err != nil || i < min || i > max {
			return msg
		}
		return ""
	}
}

// utils/message.go
package utils

import (
	"strconv"
	"strings"
)

// ComposeMessage picks a template by the stringified day offset, falling back
// to the "0" template when there is no exact key. Each placeholder is
// substituted at its first occurrence only.
func ComposeMessage(templates map[string]string, name, dueDate string, diffDays int) string {
	tpl, ok := templates[strconv.Itoa(diffDays)]
	if !ok {
		tpl = templates["0"]
	}
	msg := strings.Replace(tpl, "{name}", name, 1)
	msg = strings.Replace(msg, "{dueDate}", dueDate, 1)
	msg = strings.Replace(msg, "{diffDays}", strconv.Itoa(diffDays), 1)
	return msg
}

// Recipient resolves the number a reminder goes to: the billing contact when
// one is set, otherwise the member's own mobile, digits only.
func Recipient(paidBy, mobile string) string {
	to := paidBy
	if to == "" {
		to = mobile
	}
	return NormalizeMobile(to)
}

package utils

import "math/rand"

const (
	codeCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	codeLength  = 15
)

// GenerateCode 生成15位的随机码，字符取自大写字母和数字。
// 采用不放回抽样，同一个码内不会出现重复字符。
func GenerateCode() string {
	chars := []byte(codeCharset)
	rand.Shuffle(len(chars), func(i, j int) {
		chars[i], chars[j] = chars[j], chars[i]
	})
	return string(chars[:codeLength])
}

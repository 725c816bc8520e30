package parser

import (
	"fmt"
	"regexp"
)

// Вытаскиваем 11-символьный ID из любых форм ссылок YouTube:
// youtube.com/watch?v=..., youtu.be/..., youtube.com/embed/... и т.д.
var youtubeIDRe = regexp.MustCompile(`(?:youtube\.com/(?:[^/]+/.+/|(?:v|e(?:mbed)?)/|.*[?&]v=)|youtu\.be/)([^"&?/\s]{11})`)

// ExtractYouTubeID возвращает ID видео или ошибку, если ссылка не похожа
// на YouTube. Видео без валидного ID в каталог не попадает.
func ExtractYouTubeID(url string) (string, error) {
	m := youtubeIDRe.FindStringSubmatch(url)
	if m == nil {
		return "", fmt.Errorf("not a valid youtube url: %s", url)
	}
	return m[1], nil
}

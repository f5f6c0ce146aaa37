package utils

import "crypto/rand"

// surveyKeyAlphabet is the character set survey keys are drawn from.
// Alphanumeric only, so keys survive copy-paste and URLs unescaped.
const surveyKeyAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateSurveyKey returns a random key of n characters drawn from the
// survey key alphabet using crypto/rand. Uniqueness is not guaranteed
// here; the caller checks the database and retries on collision.
func GenerateSurveyKey(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i, b := range buf {
		buf[i] = surveyKeyAlphabet[int(b)%len(surveyKeyAlphabet)]
	}
	return string(buf), nil
}

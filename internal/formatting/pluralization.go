package formatting

// PluralizeLessons возвращает правильное склонение слова "урок"
func PluralizeLessons(count int) string {
	if count%10 == 1 && count%100 != 11 {
		return "урок"
	}
	if count%10 >= 2 && count%10 <= 4 && (count%100 < 10 || count%100 >= 20) {
		return "урока"
	}
	return "уроков"
}

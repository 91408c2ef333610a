package i18n

import "github.com/abhisek/lexplanet/internal/content"

const (
	KeyWelcome             Key = "welcome"
	KeySubWelcome          Key = "sub_welcome"
	KeySourceLabel         Key = "source_label"
	KeyTargetLabel         Key = "target_label"
	KeyModeLabel           Key = "mode_label"
	KeyVocabularyMode      Key = "vocabulary_mode"
	KeyGrammarMode         Key = "grammar_mode"
	KeyStart               Key = "start"
	KeySameLanguage        Key = "same_language"
	KeyLevel               Key = "level"
	KeyScore               Key = "score"
	KeyStreak              Key = "streak"
	KeyMap                 Key = "map"
	KeyUnlocked            Key = "unlocked"
	KeyLocked              Key = "locked"
	KeyNoContent           Key = "no_content"
	KeyProgress            Key = "progress"
	KeyCorrectCount        Key = "correct_count"
	KeyPromoted            Key = "promoted"
	KeyLevelClear          Key = "level_clear"
	KeyNextPlanet          Key = "next_planet"
	KeyBackToSetup         Key = "back_to_setup"
	KeyFailed              Key = "failed"
	KeyFailedSub           Key = "failed_sub"
	KeyRetry               Key = "retry"
	KeyBackToMap           Key = "back_to_map"
	KeyStartLesson         Key = "start_lesson"
	KeyLessonTitle         Key = "lesson_title"
	KeyLoadingBriefing     Key = "loading_briefing"
	KeyOrderingInstruction Key = "ordering_instruction"
	KeyDialogueInstruction Key = "dialogue_instruction"
	KeyChoiceInstruction   Key = "choice_instruction"
	KeyTranslateWord       Key = "translate_word"
	KeyClear               Key = "clear"
	KeyCorrect             Key = "correct"
	KeyIncorrect           Key = "incorrect"
	KeyExpected            Key = "expected"
	KeyLastPlanet          Key = "last_planet"

	KeyBriefingFallbackTitle Key = "briefing_fallback_title"
	KeyBriefingFallbackBody  Key = "briefing_fallback_body"
	KeyBriefingTopics        Key = "briefing_topics"
)

var tables = map[content.Language]map[Key]string{
	content.English: {
		KeyWelcome:             "Welcome!",
		KeySubWelcome:          "Choose your languages and start hunting.",
		KeySourceLabel:         "My native language",
		KeyTargetLabel:         "Target language",
		KeyModeLabel:           "Game mode",
		KeyVocabularyMode:      "Vocabulary",
		KeyGrammarMode:         "Grammar",
		KeyStart:               "Start hunting",
		KeySameLanguage:        "Pick two different languages.",
		KeyLevel:               "Level",
		KeyScore:               "Score",
		KeyStreak:              "Streak",
		KeyMap:                 "Map",
		KeyUnlocked:            "%d/%d planets unlocked",
		KeyLocked:              "Planet %d is still locked.",
		KeyNoContent:           "Planet %d has no questions yet.",
		KeyProgress:            "Progress",
		KeyCorrectCount:        "%d correct",
		KeyPromoted:            "Mission successful!",
		KeyLevelClear:          "Planet clear",
		KeyNextPlanet:          "Next planet",
		KeyBackToSetup:         "Back to languages",
		KeyFailed:              "Mission failed",
		KeyFailedSub:           "You must get at least %d/%d to advance.",
		KeyRetry:               "Retry level",
		KeyBackToMap:           "Back to map",
		KeyStartLesson:         "Start lesson",
		KeyLessonTitle:         "Lesson briefing",
		KeyLoadingBriefing:     "Scanning galaxy...",
		KeyOrderingInstruction: "Put the words in order!",
		KeyDialogueInstruction: "Complete the dialogue!",
		KeyChoiceInstruction:   "Choose the right answer.",
		KeyTranslateWord:       "Translate this word",
		KeyClear:               "Clear",
		KeyCorrect:             "Correct!",
		KeyIncorrect:           "Not quite.",
		KeyExpected:            "Answer: %s",
		KeyLastPlanet:          "You reached the last planet!",

		KeyBriefingFallbackTitle: "Level %d",
		KeyBriefingFallbackBody:  "Read each prompt carefully and build the answer from the words offered.",
		KeyBriefingTopics:        "Topics: %s",
	},
	content.Turkish: {
		KeyWelcome:             "Hoşgeldiniz",
		KeySubWelcome:          "Dillerini seç ve avlanmaya başla.",
		KeySourceLabel:         "Ana dilim",
		KeyTargetLabel:         "Hedef dil",
		KeyModeLabel:           "Oyun modu",
		KeyVocabularyMode:      "Kelime",
		KeyGrammarMode:         "Gramer",
		KeyStart:               "Avlanmaya başla",
		KeySameLanguage:        "İki farklı dil seç.",
		KeyLevel:               "Seviye",
		KeyScore:               "Puan",
		KeyStreak:              "Seri",
		KeyMap:                 "Harita",
		KeyUnlocked:            "%d/%d gezegen açık",
		KeyLocked:              "%d. gezegen henüz kilitli.",
		KeyNoContent:           "%d. gezegende henüz soru yok.",
		KeyProgress:            "İlerleme",
		KeyCorrectCount:        "%d doğru",
		KeyPromoted:            "İz sürme başarıyla tamamlandı",
		KeyLevelClear:          "Gezegen tamamlandı",
		KeyNextPlanet:          "Sıradaki seviye",
		KeyBackToSetup:         "Dillere dön",
		KeyFailed:              "Görev başarısız",
		KeyFailedSub:           "İlerlemek için en az %d/%d yapmalısın.",
		KeyRetry:               "Seviyeyi tekrarla",
		KeyBackToMap:           "Haritaya dön",
		KeyStartLesson:         "Derse başla",
		KeyLessonTitle:         "Görev bilgilendirmesi",
		KeyLoadingBriefing:     "Galaksi taranıyor...",
		KeyOrderingInstruction: "Kelimeleri sırala!",
		KeyDialogueInstruction: "Diyaloğu tamamla!",
		KeyChoiceInstruction:   "Doğru cevabı seç.",
		KeyTranslateWord:       "Bu kelimeyi çevir",
		KeyClear:               "Temizle",
		KeyCorrect:             "Doğru!",
		KeyIncorrect:           "Olmadı.",
		KeyExpected:            "Cevap: %s",
		KeyLastPlanet:          "Son gezegene ulaştın!",

		KeyBriefingFallbackTitle: "Seviye %d",
		KeyBriefingFallbackBody:  "Her soruyu dikkatle oku ve cevabı verilen kelimelerle kur.",
		KeyBriefingTopics:        "Konular: %s",
	},
	content.French: {
		KeyWelcome:             "Bienvenue !",
		KeySubWelcome:          "Choisissez vos langues et commencez la chasse.",
		KeySourceLabel:         "Ma langue maternelle",
		KeyTargetLabel:         "Langue cible",
		KeyModeLabel:           "Mode de jeu",
		KeyVocabularyMode:      "Vocabulaire",
		KeyGrammarMode:         "Grammaire",
		KeyStart:               "Commencer la chasse",
		KeySameLanguage:        "Choisissez deux langues différentes.",
		KeyLevel:               "Niveau",
		KeyScore:               "Points",
		KeyStreak:              "Série",
		KeyMap:                 "Carte",
		KeyUnlocked:            "%d/%d planètes débloquées",
		KeyLocked:              "La planète %d est encore verrouillée.",
		KeyNoContent:           "La planète %d n'a pas encore de questions.",
		KeyProgress:            "Progression",
		KeyCorrectCount:        "%d correctes",
		KeyPromoted:            "Mission réussie !",
		KeyLevelClear:          "Planète terminée",
		KeyNextPlanet:          "Planète suivante",
		KeyBackToSetup:         "Retour aux langues",
		KeyFailed:              "Mission échouée",
		KeyFailedSub:           "Vous devez obtenir au moins %d/%d pour avancer.",
		KeyRetry:               "Réessayer le niveau",
		KeyBackToMap:           "Retour à la carte",
		KeyStartLesson:         "Commencer la leçon",
		KeyLessonTitle:         "Briefing de mission",
		KeyLoadingBriefing:     "Analyse de la galaxie...",
		KeyOrderingInstruction: "Remettez les mots dans l'ordre !",
		KeyDialogueInstruction: "Complétez le dialogue !",
		KeyChoiceInstruction:   "Choisissez la bonne réponse.",
		KeyTranslateWord:       "Traduisez ce mot",
		KeyClear:               "Effacer",
		KeyCorrect:             "Correct !",
		KeyIncorrect:           "Pas tout à fait.",
		KeyExpected:            "Réponse : %s",
		KeyLastPlanet:          "Vous avez atteint la dernière planète !",

		KeyBriefingFallbackTitle: "Niveau %d",
		KeyBriefingFallbackBody:  "Lisez chaque consigne et construisez la réponse avec les mots proposés.",
		KeyBriefingTopics:        "Thèmes : %s",
	},
}

// Keys returns every defined key, for completeness checks.
func Keys() []Key {
	out := make([]Key, 0, len(tables[content.English]))
	for k := range tables[content.English] {
		out = append(out, k)
	}
	return out
}

// Package seed loads the study content: CASEL question banks, UEQ-S item
// banks, and scenario variants in both languages. Every write is an upsert on
// the bank's unique key, so re-running the seeder is safe.
package seed

import (
	"context"
	"fmt"

	"selstudy/internal/model"
	"selstudy/internal/repository"
)

// Run seeds all content banks
func Run(ctx context.Context, questionRepo repository.QuestionRepo, scenarioRepo repository.ScenarioRepo) error {
	for _, q := range CASELQuestions() {
		if err := questionRepo.UpsertSELQuestion(ctx, q); err != nil {
			return fmt.Errorf("seed casel question %s/%s: %w", q.Lang, q.Key, err)
		}
	}

	for _, item := range UEQItems() {
		if err := questionRepo.UpsertUEQItem(ctx, item); err != nil {
			return fmt.Errorf("seed ueq item %s/%s: %w", item.Lang, item.Key, err)
		}
	}

	for _, s := range Scenarios() {
		if err := scenarioRepo.Upsert(ctx, s); err != nil {
			return fmt.Errorf("seed scenario %s/%s: %w", s.ScenarioID, s.Lang, err)
		}
	}

	return nil
}

func agreementOptionsEN() []model.AnswerOption {
	return []model.AnswerOption{
		{Value: 1, Label: "Strongly disagree"},
		{Value: 2, Label: "Disagree"},
		{Value: 3, Label: "Agree"},
		{Value: 4, Label: "Strongly agree"},
	}
}

func agreementOptionsHE() []model.AnswerOption {
	return []model.AnswerOption{
		{Value: 1, Label: "מאוד לא מסכים/ה"},
		{Value: 2, Label: "לא מסכים/ה"},
		{Value: 3, Label: "מסכים/ה"},
		{Value: 4, Label: "מאוד מסכים/ה"},
	}
}

type caselItem struct {
	key      string
	category string
	textEN   string
	textHE   string
}

var caselItems = []caselItem{
	{"sa1", model.CategorySelfAwareness,
		"I can identify my emotions as I experience them.",
		"אני מסוגל/ת לזהות את הרגשות שלי בזמן שאני חווה אותם."},
	{"sa2", model.CategorySelfAwareness,
		"I know what my personal strengths are.",
		"אני יודע/ת מהן החוזקות האישיות שלי."},
	{"sm1", model.CategorySelfManagement,
		"I stay calm when things do not go my way.",
		"אני נשאר/ת רגוע/ה כשדברים לא מסתדרים כמו שרציתי."},
	{"sm2", model.CategorySelfManagement,
		"I can keep working toward a goal even when it is hard.",
		"אני מסוגל/ת להמשיך לפעול למען מטרה גם כשזה קשה."},
	{"soc1", model.CategorySocialAwareness,
		"I notice when someone around me is upset.",
		"אני שם/ה לב כשמישהו סביבי נסער."},
	{"soc2", model.CategorySocialAwareness,
		"I try to understand how other people see a situation.",
		"אני מנסה להבין איך אנשים אחרים רואים מצב מסוים."},
	{"rs1", model.CategoryRelationshipSkills,
		"I can work out disagreements with others by talking.",
		"אני מצליח/ה ליישב מחלוקות עם אחרים באמצעות שיחה."},
	{"rs2", model.CategoryRelationshipSkills,
		"I ask for help when I need it.",
		"אני מבקש/ת עזרה כשאני זקוק/ה לה."},
	{"dm1", model.CategoryDecisionMaking,
		"I think about the consequences before I act.",
		"אני חושב/ת על ההשלכות לפני שאני פועל/ת."},
	{"dm2", model.CategoryDecisionMaking,
		"I consider how my choices affect other people.",
		"אני שוקל/ת כיצד הבחירות שלי משפיעות על אנשים אחרים."},
}

// CASELQuestions returns the v1 bank in both languages
func CASELQuestions() []*model.SELQuestion {
	var out []*model.SELQuestion
	for i, item := range caselItems {
		out = append(out, &model.SELQuestion{
			Version:  model.DefaultCASELVersion,
			Lang:     model.LangEN,
			Key:      item.key,
			Category: item.category,
			Text:     item.textEN,
			Order:    i + 1,
			Options:  agreementOptionsEN(),
		})
		out = append(out, &model.SELQuestion{
			Version:  model.DefaultCASELVersion,
			Lang:     model.LangHE,
			Key:      item.key,
			Category: item.category,
			Text:     item.textHE,
			Order:    i + 1,
			Options:  agreementOptionsHE(),
		})
	}
	return out
}

type ueqPair struct {
	key       string
	pragmatic bool
	leftEN    string
	rightEN   string
	leftHE    string
	rightHE   string
}

// The short UEQ item set: four pragmatic pairs followed by four hedonic pairs
var ueqPairs = []ueqPair{
	{"obstructive_supportive", true, "obstructive", "supportive", "מכשיל", "תומך"},
	{"complicated_easy", true, "complicated", "easy", "מסובך", "קל"},
	{"inefficient_efficient", true, "inefficient", "efficient", "לא יעיל", "יעיל"},
	{"confusing_clear", true, "confusing", "clear", "מבלבל", "ברור"},
	{"boring_exciting", false, "boring", "exciting", "משעמם", "מרגש"},
	{"not_interesting_interesting", false, "not interesting", "interesting", "לא מעניין", "מעניין"},
	{"conventional_inventive", false, "conventional", "inventive", "שגרתי", "חדשני"},
	{"usual_leading_edge", false, "usual", "leading edge", "רגיל", "פורץ דרך"},
}

// UEQItems returns the v1 UEQ-S bank in both languages
func UEQItems() []*model.UEQItem {
	var out []*model.UEQItem
	for i, p := range ueqPairs {
		out = append(out, &model.UEQItem{
			Version:    model.DefaultUEQVersion,
			Lang:       model.LangEN,
			Key:        p.key,
			LeftLabel:  p.leftEN,
			RightLabel: p.rightEN,
			Order:      i + 1,
			Pragmatic:  p.pragmatic,
		})
		out = append(out, &model.UEQItem{
			Version:    model.DefaultUEQVersion,
			Lang:       model.LangHE,
			Key:        p.key,
			LeftLabel:  p.leftHE,
			RightLabel: p.rightHE,
			Order:      i + 1,
			Pragmatic:  p.pragmatic,
		})
	}
	return out
}

// Scenarios returns both language variants of every scenario the group
// assignment table can hand out
func Scenarios() []*model.Scenario {
	return []*model.Scenario{
		{
			ScenarioID:     "S1",
			Lang:           model.LangEN,
			Title:          "The New Student",
			Situation:      "A new student joined your class this week. At lunch you see them sitting alone, looking at their phone while everyone else sits in groups. One of your friends jokes that the new kid is \"weird\" for not talking to anyone.",
			QuestionPrompt: "What would you do in this situation, and why?",
			ReflectionPrompts: []string{
				"How do you think the new student feels?",
				"What might make it hard for them to join a group?",
			},
			SELTags: []string{model.CategorySocialAwareness, model.CategoryRelationshipSkills},
			Active:  true,
		},
		{
			ScenarioID:     "S1",
			Lang:           model.LangHE,
			Title:          "התלמיד החדש",
			Situation:      "תלמיד חדש הצטרף לכיתה שלך השבוע. בהפסקת הצהריים אתה רואה אותו יושב לבד, מסתכל בטלפון בזמן שכל השאר יושבים בקבוצות. אחד החברים שלך מתבדח שהילד החדש \"מוזר\" כי הוא לא מדבר עם אף אחד.",
			QuestionPrompt: "מה היית עושה במצב הזה, ולמה?",
			ReflectionPrompts: []string{
				"איך לדעתך מרגיש התלמיד החדש?",
				"מה עלול להקשות עליו להצטרף לקבוצה?",
			},
			SELTags: []string{model.CategorySocialAwareness, model.CategoryRelationshipSkills},
			Active:  true,
		},
		{
			ScenarioID:     "S3",
			Lang:           model.LangEN,
			Title:          "The Group Project",
			Situation:      "Your group has a project due Friday. One member, Dana, has not done their part and keeps promising to finish \"tomorrow\". Today another member suggests telling the teacher that Dana should get a lower grade than the rest of you.",
			QuestionPrompt: "What would you do in this situation, and why?",
			ReflectionPrompts: []string{
				"What reasons might Dana have for falling behind?",
				"How could the group solve this without leaving anyone out?",
			},
			SELTags: []string{model.CategoryRelationshipSkills, model.CategoryDecisionMaking},
			Active:  true,
		},
		{
			ScenarioID:     "S3",
			Lang:           model.LangHE,
			Title:          "עבודת הקבוצה",
			Situation:      "לקבוצה שלך יש פרויקט להגשה ביום שישי. חברת קבוצה אחת, דנה, לא עשתה את החלק שלה וממשיכה להבטיח לסיים \"מחר\". היום חבר אחר מציע לספר למורה שדנה צריכה לקבל ציון נמוך יותר משאר הקבוצה.",
			QuestionPrompt: "מה היית עושה במצב הזה, ולמה?",
			ReflectionPrompts: []string{
				"אילו סיבות יכולות להיות לדנה לפיגור בעבודה?",
				"איך הקבוצה יכולה לפתור את זה בלי להשאיר אף אחד בחוץ?",
			},
			SELTags: []string{model.CategoryRelationshipSkills, model.CategoryDecisionMaking},
			Active:  true,
		},
		{
			ScenarioID:     "S10",
			Lang:           model.LangEN,
			Title:          "The Group Chat",
			Situation:      "Someone shared an embarrassing photo of a classmate in your class group chat. People are adding laughing emojis and jokes. The classmate in the photo has not seen it yet, but they will when they open their phone.",
			QuestionPrompt: "What would you do in this situation, and why?",
			ReflectionPrompts: []string{
				"What could happen if nobody says anything?",
				"What makes it hard to speak up in a group chat?",
			},
			SELTags: []string{model.CategoryDecisionMaking, model.CategorySocialAwareness},
			Active:  true,
		},
		{
			ScenarioID:     "S10",
			Lang:           model.LangHE,
			Title:          "הצ'אט הקבוצתי",
			Situation:      "מישהו שיתף תמונה מביכה של תלמיד מהכיתה בצ'אט הקבוצתי. אנשים מוסיפים אימוג'ים צוחקים ובדיחות. התלמיד שבתמונה עדיין לא ראה אותה, אבל הוא יראה כשיפתח את הטלפון.",
			QuestionPrompt: "מה היית עושה במצב הזה, ולמה?",
			ReflectionPrompts: []string{
				"מה עלול לקרות אם אף אחד לא יגיד כלום?",
				"מה מקשה להגיב בצ'אט קבוצתי?",
			},
			SELTags: []string{model.CategoryDecisionMaking, model.CategorySocialAwareness},
			Active:  true,
		},
		{
			ScenarioID:     "S14",
			Lang:           model.LangEN,
			Title:          "The Tryouts",
			Situation:      "You practiced for weeks for the team tryouts, but you did not make the cut. Your best friend did. On the way home they keep talking excitedly about the first training session, and you feel anger building up inside you.",
			QuestionPrompt: "What would you do in this situation, and why?",
			ReflectionPrompts: []string{
				"What are you feeling, and what is causing it?",
				"How can you be honest about your feelings without hurting your friend?",
			},
			SELTags: []string{model.CategorySelfAwareness, model.CategorySelfManagement},
			Active:  true,
		},
		{
			ScenarioID:     "S14",
			Lang:           model.LangHE,
			Title:          "מבחני הקבלה",
			Situation:      "התאמנת במשך שבועות למבחני הקבלה לנבחרת, אבל לא התקבלת. החבר הכי טוב שלך כן התקבל. בדרך הביתה הוא ממשיך לדבר בהתלהבות על האימון הראשון, ואתה מרגיש שכעס מצטבר בתוכך.",
			QuestionPrompt: "מה היית עושה במצב הזה, ולמה?",
			ReflectionPrompts: []string{
				"מה אתה מרגיש, ומה גורם לזה?",
				"איך אפשר להיות כן לגבי הרגשות שלך מבלי לפגוע בחבר?",
			},
			SELTags: []string{model.CategorySelfAwareness, model.CategorySelfManagement},
			Active:  true,
		},
	}
}

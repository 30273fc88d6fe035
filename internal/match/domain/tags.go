package domain

import (
	"encoding/json"
	"sort"
)

// Tag — метка аффинности. Ровно шесть значений, других не бывает.
type Tag string

const (
	TagLowCalories     Tag = "lowCalories"
	TagEnergyProviders Tag = "energyProviders"
	TagWillingTour     Tag = "willingTour"
	TagStressRelease   Tag = "stressRelease"
	TagHappyChoice     Tag = "happyChoice"
	TagOthers          Tag = "others"
)

// AllTags перечисляет полный universe меток
var AllTags = []Tag{
	TagLowCalories,
	TagEnergyProviders,
	TagWillingTour,
	TagStressRelease,
	TagHappyChoice,
	TagOthers,
}

// TagSet — множество меток rider-а
type TagSet map[Tag]struct{}

func NewTagSet(tags ...Tag) TagSet {
	s := make(TagSet, len(tags))
	for _, t := range tags {
		s[t] = struct{}{}
	}
	return s
}

func (s TagSet) Add(t Tag) { s[t] = struct{}{} }

func (s TagSet) Contains(t Tag) bool {
	_, ok := s[t]
	return ok
}

// Slice возвращает метки в отсортированном порядке (стабильная сериализация)
func (s TagSet) Slice() []string {
	out := make([]string, 0, len(s))
	for t := range s {
		out = append(out, string(t))
	}
	sort.Strings(out)
	return out
}

func (s TagSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Slice())
}

func (s *TagSet) UnmarshalJSON(b []byte) error {
	var raw []string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	set := make(TagSet, len(raw))
	for _, t := range raw {
		set[Tag(t)] = struct{}{}
	}
	*s = set
	return nil
}

// Закрытые наборы категорий для каждой метки
var (
	lowCaloriesCategories = newStringSet("seafood", "vegetarian", "vegan", "sushi")

	energyProvidersCategories = newStringSet("bakeries", "ramen", "donuts", "burgers",
		"bagels", "pizza", "sandwiches", "icecream",
		"desserts", "bbq", "dimsum", "steak")

	willingTourCategories = newStringSet("parks", "museums", "newamerican", "landmarks")

	stressReleaseCategories = newStringSet("coffee", "bars", "wine_bars", "cocktailbars", "lounges")

	happyChoiceCategories = newStringSet("italian", "thai", "cuban", "japanese", "mideastern",
		"cajun", "tapas", "breakfast_brunch", "korean", "mediterranean",
		"vietnamese", "indpak", "southern", "latin", "greek", "mexican",
		"asianfusion", "spanish", "chinese")
)

func newStringSet(items ...string) map[string]struct{} {
	s := make(map[string]struct{}, len(items))
	for _, it := range items {
		s[it] = struct{}{}
	}
	return s
}

// categoryRule — одно правило классификации категории бизнеса
type categoryRule struct {
	members map[string]struct{}
	tag     Tag
}

// categoryRules — упорядоченный список правил, первое совпадение выигрывает
var categoryRules = []categoryRule{
	{happyChoiceCategories, TagHappyChoice},
	{stressReleaseCategories, TagStressRelease},
	{willingTourCategories, TagWillingTour},
	{energyProvidersCategories, TagEnergyProviders},
	{lowCaloriesCategories, TagLowCalories},
}

// ClassifyCategory относит категорию бизнеса ровно к одной метке.
// Чистая функция: правила проверяются сверху вниз, иначе others.
func ClassifyCategory(category string) Tag {
	for _, r := range categoryRules {
		if _, ok := r.members[category]; ok {
			return r.tag
		}
	}
	return TagOthers
}

// UserSignals — моментальные показания rider-а из события RIDER_STATUS
type UserSignals struct {
	Mood       int
	BloodSugar int
	Stress     int
	Active     int
}

// Предикаты независимы: каждый может добавить свою метку
func wantsLowCalories(s UserSignals) bool {
	return s.BloodSugar > 4 && s.Mood > 6 && s.Active == 3
}

func needsEnergy(s UserSignals) bool {
	return s.BloodSugar < 2 || s.Mood < 4
}

func openToTour(s UserSignals) bool {
	return s.Active == 3
}

func needsStressRelease(s UserSignals) bool {
	return s.Stress > 5 || s.Active == 1 || s.Mood < 4
}

func feelsHappy(s UserSignals) bool {
	return s.Mood > 6
}

// signalRule — одно правило тегирования rider-а
type signalRule struct {
	applies func(UserSignals) bool
	tag     Tag
}

var signalRules = []signalRule{
	{wantsLowCalories, TagLowCalories},
	{needsEnergy, TagEnergyProviders},
	{openToTour, TagWillingTour},
	{needsStressRelease, TagStressRelease},
	{feelsHappy, TagHappyChoice},
}

// UserTags выводит множество меток из сигналов. В отличие от
// ClassifyCategory правила аддитивны; если ни одно не сработало — {others}.
func UserTags(s UserSignals) TagSet {
	tags := make(TagSet)
	for _, r := range signalRules {
		if r.applies(s) {
			tags.Add(r.tag)
		}
	}
	if len(tags) == 0 {
		tags.Add(TagOthers)
	}
	return tags
}

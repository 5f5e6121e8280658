package seeders

import "quote-system/pkg/utils"

// Наборы данных для первичного наполнения БД.

type zoneSeed struct {
	Code    string
	TitleRu string
}

var zonesData = []zoneSeed{
	{Code: "engine", TitleRu: "Моторный отсек"},
	{Code: "fuel_tank", TitleRu: "Топливный бак"},
	{Code: "hydraulics", TitleRu: "Гидравлика"},
	{Code: "cabin", TitleRu: "Кабина"},
	{Code: "battery", TitleRu: "Аккумуляторный отсек"},
}

type skuSeed struct {
	Code string
	Name string
	Unit string
}

var skusData = []skuSeed{
	{Code: "GPM-040", Name: "Модуль порошкового пожаротушения 4 л", Unit: "шт"},
	{Code: "GPM-080", Name: "Модуль порошкового пожаротушения 8 л", Unit: "шт"},
	{Code: "TRM-010", Name: "Термокабель, бухта 10 м", Unit: "м"},
	{Code: "PUSK-01", Name: "Блок пуска автономный", Unit: "шт"},
	{Code: "KRP-STD", Name: "Комплект крепежа стандартный", Unit: "компл"},
	{Code: "RKV-6", Name: "Рукав высокого давления 6 мм", Unit: "м"},
	{Code: "SND-T", Name: "Датчик температуры выносной", Unit: "шт"},
}

type engineOptionSeed struct {
	EngineName string
	YearFrom   *int
	YearTo     *int
}

type techniqueSeed struct {
	Manufacturer string
	Model        string
	Series       *string
	Engines      []engineOptionSeed
	Aliases      []string
}

var techniquesData = []techniqueSeed{
	{
		Manufacturer: "БЕЛАЗ",
		Model:        "7513",
		Series:       utils.StringPtr("75131"),
		Engines: []engineOptionSeed{
			{EngineName: "Cummins KTA50-C", YearFrom: utils.IntPtr(2005)},
			{EngineName: "ЯМЗ-845.10", YearFrom: utils.IntPtr(2000), YearTo: utils.IntPtr(2012)},
		},
		Aliases: []string{"Белаз 75131", "BELAZ 7513"},
	},
	{
		Manufacturer: "Komatsu",
		Model:        "PC3000",
		Engines: []engineOptionSeed{
			{EngineName: "Komatsu SDA12V159", YearFrom: utils.IntPtr(2008)},
		},
		Aliases: []string{"Комацу ПС3000"},
	},
	{
		Manufacturer: "Caterpillar",
		Model:        "777",
		Series:       utils.StringPtr("777G"),
		Engines: []engineOptionSeed{
			{EngineName: "Cat C32", YearFrom: utils.IntPtr(2011)},
		},
		Aliases: []string{"Кат 777", "CAT 777G"},
	},
}

type ruleSeed struct {
	Manufacturer   string
	Model          string
	ConditionsJSON string
	ActionsJSON    string
}

// Демонстрационные правила: базовая комплектация для каждой техники
// плюс дополнения для отдельных зон.
var rulesData = []ruleSeed{
	{
		Manufacturer:   "БЕЛАЗ",
		Model:          "7513",
		ConditionsJSON: `{}`,
		ActionsJSON:    `[{"sku_id": 2, "multiplier": 2}, {"sku_id": 3, "multiplier": 10}, {"sku_id": 4, "multiplier": 1}, {"sku_id": 5, "multiplier": 1}]`,
	},
	{
		Manufacturer:   "БЕЛАЗ",
		Model:          "7513",
		ConditionsJSON: `{"zones_included": ["fuel_tank"]}`,
		ActionsJSON:    `[{"sku_id": 1, "multiplier": 1}]`,
	},
	{
		Manufacturer:   "Komatsu",
		Model:          "PC3000",
		ConditionsJSON: `{}`,
		ActionsJSON:    `[{"sku_id": 2, "multiplier": 3}, {"sku_id": 3, "multiplier": 15}, {"sku_id": 4, "multiplier": 1}]`,
	},
	{
		Manufacturer:   "Caterpillar",
		Model:          "777",
		ConditionsJSON: `{"year_range": {"from": 2011}}`,
		ActionsJSON:    `[{"sku_id": 2, "multiplier": 2}, {"sku_id": 6, "multiplier": 4}, {"sku_id": 7, "multiplier": 2}]`,
	},
}

type userSeed struct {
	Login    string
	Password string
	Role     string
}

var usersData = []userSeed{
	{Login: "admin", Password: "admin123", Role: "admin"},
	{Login: "manager", Password: "manager123", Role: "manager"},
	{Login: "sklad", Password: "sklad123", Role: "warehouse"},
}

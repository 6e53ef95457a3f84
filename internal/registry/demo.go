package registry

import "github.com/djrooz/btl-agency-scraper/internal/model"

// DemoRecords returns a small built-in batch of raw records for offline
// runs and smoke testing. The companies are real agencies from the 2024
// market research; a few entries are deliberately messy (duplicate tax
// ids, textual revenue, missing fields) so the full pipeline has work
// to do.
func DemoRecords() []model.RawRecord {
	return []model.RawRecord{
		{
			"name": "LBL", "inn": "7707083893", "revenue": 986900000,
			"revenue_year": 2024, "segment_tag": "BTL", "source": "marketing_tech",
			"okved_main": "73.11", "employees": 250, "site": "https://lbl.ru",
			"description": "Одно из крупнейших BTL агентств России, специализирующееся на промо-акциях и активации брендов",
			"region": "Москва", "contacts": "+7 (495) 123-45-67",
			"rating_ref": "https://marketing-tech.ru/companies/lbl/",
		},
		{
			// Same entity as above via the FNS registry, sparser fields.
			"name": "ООО \"ЛБЛ\"", "inn": "7707083893", "revenue": 0,
			"source": "fns_open_data", "okved_main": "73.11", "region": "москва",
		},
		{
			"name": "DDVB", "inn": "7701234567", "revenue": "227.3 млн",
			"revenue_year": 2024, "segment_tag": "BTL", "source": "marketing_tech",
			"okved_main": "73.11", "employees": 150, "site": "https://ddvb.ru",
			"description": "BTL агентство полного цикла, специализирующееся на промо-акциях и мерчендайзинге",
			"region": "Москва", "contacts": "info@ddvb.ru",
			"rating_ref": "https://marketing-tech.ru/companies/ddvb/",
		},
		{
			"name": "DDVB", "inn": "7701234567", "revenue": 227300000,
			"revenue_year": 2024, "segment_tag": "BTL", "source": "rusprofile",
			"employees": 150, "region": "Москва",
		},
		{
			"name": "emg", "inn": "7707123456", "revenue": 520000000,
			"revenue_year": 2024, "segment_tag": "FULL_CYCLE", "source": "rrar_2025",
			"okved_main": "73.11", "employees": 300, "site": "https://emg.ru",
			"description": "Крупнейшее российское агентство интегрированных маркетинговых коммуникаций",
			"region": "Москва", "contacts": "+7 (495) 234-56-78",
			"rating_ref": "https://www.alladvertising.ru/info/emg.html",
		},
		{
			"name": "Креон", "revenue": 340000000, "revenue_year": 2024,
			"segment_tag": "BTL", "source": "rrar_2025", "okved_main": "73.11",
			"employees": 180, "site": "https://creon.ru",
			"description": "Агентство BTL и событийного маркетинга, организация масштабных мероприятий",
			"region": "Москва", "contacts": "contact@creon.ru",
		},
		{
			// Same entity without a tax id, legal form in the name.
			"name": "ООО Креон", "revenue": 0, "segment_tag": "BTL",
			"source": "list_org", "region": "Москва",
		},
		{
			"name": "Oasis", "inn": "7801234567", "revenue": 420000000,
			"revenue_year": 2024, "segment_tag": "SOUVENIR", "source": "rrar_2025",
			"okved_main": "47.78.3", "employees": 200, "site": "https://oasis-gifts.ru",
			"description": "Ведущий поставщик сувенирной продукции и бизнес-подарков в России",
			"region": "Санкт-Петербург", "contacts": "info@oasis-gifts.ru",
			"rating_ref": "https://www.alladvertising.ru/info/oasis_business_gifts.html",
		},
		{
			"name": "N:OW", "inn": "7707456789", "revenue": 390000000,
			"revenue_year": 2024, "segment_tag": "EVENT", "source": "rrar_2025",
			"okved_main": "82.30", "employees": 160, "site": "https://now-agency.ru",
			"description": "Event агентство полного цикла, организация корпоративных и специальных мероприятий",
			"region": "Москва", "contacts": "+7 (495) 456-78-90",
		},
		{
			// Positive revenue under any sane threshold: exercises the
			// validity gate.
			"name": "Промо Старт", "inn": "7812345678", "revenue": 150000,
			"revenue_year": 2024, "segment_tag": "PROMO", "source": "list_org",
			"region": "спб",
		},
	}
}

package models

import "github.com/shopspring/decimal"

// Product is a single catalog entry. The catalog is fixed for the lifetime
// of the process; products are never created or modified at runtime.
type Product struct {
	ID          int             `json:"id" db:"id"`
	Name        string          `json:"name" db:"name"`
	Description string          `json:"description" db:"description"`
	Price       decimal.Decimal `json:"price" db:"price"`
	Category    string          `json:"category" db:"category"`
	Image       string          `json:"image" db:"image"`
}

// AddOn is an optional extra a shopper can fold into a loaf. The Price field
// is informational only: charging is governed by the flat surcharge rule in
// the cart service, never by per-add-on prices.
type AddOn struct {
	ID    string          `json:"id" db:"id"`
	Name  string          `json:"name" db:"name"`
	Price decimal.Decimal `json:"price" db:"price"`
}

// DefaultAddOns returns the bakery's fixed add-on list.
func DefaultAddOns() []*AddOn {
	return []*AddOn{
		{ID: "walnuts", Name: "אגוזי מלך", Price: decimal.Zero},
		{ID: "olives", Name: "זיתי קלמטה", Price: decimal.Zero},
		{ID: "cranberries", Name: "חמוציות", Price: decimal.Zero},
		{ID: "seeds", Name: "גרעיני דלעת וחמניה", Price: decimal.Zero},
	}
}

// DefaultProducts returns the bakery's fixed menu.
func DefaultProducts() []*Product {
	return []*Product{
		{
			ID:          1,
			Name:        "מחמצת כוסמין קלאסית",
			Description: "100% קמח כוסמין",
			Price:       decimal.NewFromInt(30),
			Category:    "כוסמין",
			Image:       "https://lh3.googleusercontent.com/aida-public/AB6AXuDRZBdzHp5_sKQosw5NBJE3p_435uZSTYuxSdAkRjLOvbD5BOwO5ekHemAJhV6f-ucqcKgir1bipAOfWOYsX6Ib7A99OTBDYGOc_daTtHoqp8WSchFh0W0pshDjSXrCbvDCpNe6c6ryxA8_02bXhXeE9UpYXCQrJ009XiT_aG3e5lilQmf7sR-E3LufkVTQbqZhe_7N00HnoN8VtGN65Hy3ZWU8N6z-x6mKo7DKJWpnBdHbjN7TfFLQDVO_JWM2jzYbWqP4b5yjaHZT",
		},
		{
			ID:          2,
			Name:        "מחמצת חיטה מלאה",
			Description: "100% קמח חיטה מלאה",
			Price:       decimal.NewFromInt(30),
			Category:    "חיטה מלאה",
			Image:       "https://lh3.googleusercontent.com/aida-public/AB6AXuDDZDeaSdtPFUHb9aCEtqdX7R2wNs_N-xKkv3ZDafQxZEuRtkPCTOfUtbY42xeVsaOXuRo6SWZpYJG5Eitkh0fwnXQFKcGVnrNG-yPEbYeJCI1X9QcCHx8_vp24PV-J-BsfICVibQsuilU2hd5YlzeD8r67Kuis2qnCas2gGem_ZC6YT4r8rsLXPswq-gdmJmH8B2boXqka7t6PGTHiP8zTQh6jadhzKM69IUZKWAAorxr8MaB9ydOA7r32tSRqVMGsZrOazLz_xpgT",
		},
		{
			ID:          3,
			Name:        "מחמצת מתערובת קמחים ללא גלוטן",
			Description: "תערובת קמחי מקור איכותיים ללא גלוטן בתהליך מחמצת טבעי וארוך.",
			Price:       decimal.NewFromInt(38),
			Category:    "ללא גלוטן",
			Image:       "https://lh3.googleusercontent.com/aida-public/AB6AXuDrOVPYhP1aLXeCx2a2w61NcENELCcnZUyHxSC_XNrEPByG0htPg315bhSxAmpLI7Hj_flIkz-e71w25Wu6BUQVRRfm0YcSOwWxXSAGsrzCy71kJnEMVAmX-a6Bf2uK921zosmtszAYmxHVjab8PhrtFKBgo7iATbH8Q5oT4OSIDBK8KiFrN4K3QSapcP0Q4lZTU9qZ0BzvzDAFenK7BD1_dsI3l3T8Sdt0606ccPdfLUaAKVka2CikCnTImhFxNGDR2NfM-FtTYC2h",
		},
	}
}

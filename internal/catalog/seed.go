// Eatsential - Health-Aware Meal Recommendation Engine
// Copyright 2026 Taylor Brown (TaylorBrown96)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/TaylorBrown96/CSC510-proj3

package catalog

import (
	"context"
	"fmt"

	"github.com/TaylorBrown96/CSC510-proj3/internal/logging"
)

// Seed loads the deterministic demo catalog: the allergen vocabulary, eight
// restaurants with five dishes each, and three demo users with health
// profiles. Intended for local development, demos, and CI; enabled by the
// SEED_DEMO_DATA config flag.
//
// Seeding is idempotent (INSERT OR REPLACE on primary keys) and invalidates
// the snapshot and profile caches when it finishes.
func (s *Store) Seed(ctx context.Context) error {
	logging.Info().Msg("Seeding catalog with demo data...")

	ctx, cancel := s.ensureContext(ctx)
	defer cancel()

	intPtr := func(n int) *int { return &n }

	// Allergen vocabulary. IDs are stable slugs; the recommendation pipeline
	// intersects on IDs and matches names against dish text for items the
	// catalog does not know.
	allergens := []Allergen{
		{ID: "peanut", Name: "Peanut"},
		{ID: "tree_nut", Name: "Tree Nut"},
		{ID: "dairy", Name: "Dairy"},
		{ID: "egg", Name: "Egg"},
		{ID: "wheat", Name: "Wheat"},
		{ID: "soy", Name: "Soy"},
		{ID: "fish", Name: "Fish"},
		{ID: "shellfish", Name: "Shellfish"},
		{ID: "sesame", Name: "Sesame"},
	}

	restaurants := []struct {
		id      string
		name    string
		cuisine string
		placeID string
		address string
	}{
		{"rest-trattoria-nonna", "Trattoria della Nonna", "italian", "place-trattoria-nonna", "214 Mulberry St"},
		{"rest-bangkok-basil", "Bangkok Basil", "thai", "place-bangkok-basil", "88 Siam Ave"},
		{"rest-casa-norte", "Casa del Norte", "mexican", "place-casa-norte", "402 Agave Blvd"},
		{"rest-sakura-sushi", "Sakura Sushi Bar", "japanese", "place-sakura-sushi", "17 Maple Row"},
		{"rest-spice-route", "Spice Route", "indian", "place-spice-route", "960 Cardamom Ln"},
		{"rest-harvest-table", "The Harvest Table", "american", "place-harvest-table", "75 Orchard Way"},
		{"rest-olive-grove", "Olive & Grove", "mediterranean", "place-olive-grove", "31 Thyme Ct"},
		{"rest-saigon-garden", "Saigon Garden", "vietnamese", "place-saigon-garden", "550 Lotus St"},
	}

	items := []struct {
		id           string
		restaurantID string
		name         string
		description  string
		price        float64
		calories     *int
		dietTags     []string
		allergens    []string
	}{
		// Trattoria della Nonna
		{"item-margherita-pizza", "rest-trattoria-nonna", "Margherita Pizza",
			"Wood-fired crust with san marzano tomatoes, fresh mozzarella, and basil",
			12.50, intPtr(850), []string{"vegetarian"}, []string{"dairy", "wheat"}},
		{"item-spaghetti-carbonara", "rest-trattoria-nonna", "Spaghetti Carbonara",
			"Guanciale, egg yolk, pecorino romano, and cracked black pepper",
			16.00, intPtr(920), nil, []string{"dairy", "egg", "wheat"}},
		{"item-lasagna-al-forno", "rest-trattoria-nonna", "Lasagna al Forno",
			"Layered beef ragu, besciamella, and parmigiano, baked to order",
			18.50, intPtr(1050), nil, []string{"dairy", "egg", "wheat"}},
		{"item-insalata-caprese", "rest-trattoria-nonna", "Insalata Caprese",
			"Heirloom tomatoes, buffalo mozzarella, basil, and aged balsamic",
			9.50, intPtr(380), []string{"vegetarian", "gluten_free"}, []string{"dairy"}},
		{"item-osso-buco", "rest-trattoria-nonna", "Osso Buco alla Milanese",
			"Braised veal shank with saffron risotto and gremolata butter",
			38.00, intPtr(890), []string{"gluten_free"}, []string{"dairy"}},

		// Bangkok Basil
		{"item-pad-thai-goong", "rest-bangkok-basil", "Pad Thai Goong",
			"Rice noodles wok-tossed with shrimp, egg, tamarind, and crushed peanuts",
			13.50, intPtr(780), nil, []string{"peanut", "egg", "fish", "shellfish"}},
		{"item-green-curry", "rest-bangkok-basil", "Green Curry Chicken",
			"Coconut green curry with thai eggplant, bamboo, and jasmine rice",
			14.00, intPtr(690), []string{"gluten_free"}, []string{"fish"}},
		{"item-tom-yum-goong", "rest-bangkok-basil", "Tom Yum Goong",
			"Hot and sour lemongrass broth with prawns and straw mushrooms",
			12.00, intPtr(320), []string{"gluten_free"}, []string{"shellfish", "fish"}},
		{"item-mango-sticky-rice", "rest-bangkok-basil", "Mango Sticky Rice",
			"Sweet coconut sticky rice with ripe mango and toasted mung beans",
			8.00, intPtr(450), []string{"vegan", "gluten_free"}, nil},
		{"item-basil-fried-rice", "rest-bangkok-basil", "Basil Fried Rice",
			"Jasmine rice, holy basil, chilies, egg, and a soy-fish sauce glaze",
			11.50, intPtr(640), nil, []string{"egg", "fish", "soy"}},

		// Casa del Norte
		{"item-tinga-tacos", "rest-casa-norte", "Chicken Tinga Tacos",
			"Chipotle-braised chicken on corn tortillas with pickled onion",
			10.50, intPtr(560), []string{"gluten_free"}, nil},
		{"item-carne-asada-burrito", "rest-casa-norte", "Carne Asada Burrito",
			"Grilled steak, rice, black beans, cheese, and crema in a flour tortilla",
			12.00, intPtr(980), nil, []string{"wheat", "dairy"}},
		{"item-guacamole-chips", "rest-casa-norte", "Guacamole & Chips",
			"Hand-smashed avocado with lime and cilantro, fried corn tortilla chips",
			7.50, intPtr(520), []string{"vegan", "gluten_free"}, nil},
		{"item-queso-fundido", "rest-casa-norte", "Queso Fundido",
			"Melted chihuahua cheese with roasted poblano and warm tortillas",
			9.00, intPtr(610), []string{"vegetarian"}, []string{"dairy", "wheat"}},
		{"item-mole-poblano", "rest-casa-norte", "Mole Poblano",
			"Chicken in a slow mole of chilies, peanuts, almonds, and cacao",
			17.00, intPtr(740), []string{"gluten_free"}, []string{"peanut", "tree_nut"}},

		// Sakura Sushi Bar
		{"item-salmon-nigiri", "rest-sakura-sushi", "Salmon Nigiri (5 pc)",
			"Scottish salmon over seasoned rice, brushed with nikiri soy",
			15.00, intPtr(310), nil, []string{"fish", "soy"}},
		{"item-california-roll", "rest-sakura-sushi", "California Roll",
			"Snow crab, avocado, and cucumber rolled in sesame seeds",
			12.00, intPtr(420), nil, []string{"shellfish", "sesame", "soy", "egg"}},
		{"item-teriyaki-bowl", "rest-sakura-sushi", "Chicken Teriyaki Bowl",
			"Grilled chicken glazed with teriyaki over rice, sesame, and scallion",
			13.50, intPtr(720), nil, []string{"soy", "wheat", "sesame"}},
		{"item-edamame", "rest-sakura-sushi", "Edamame",
			"Steamed young soybeans with flaked sea salt",
			5.50, intPtr(180), []string{"vegan", "gluten_free"}, []string{"soy"}},
		{"item-omakase-platter", "rest-sakura-sushi", "Omakase Platter",
			"Chef's selection of twelve nigiri and a hand roll",
			58.00, nil, nil, []string{"fish", "shellfish", "soy", "egg", "sesame"}},

		// Spice Route
		{"item-chana-masala", "rest-spice-route", "Chana Masala",
			"Chickpeas simmered in tomato, ginger, and toasted garam masala",
			11.00, intPtr(480), []string{"vegan", "gluten_free"}, nil},
		{"item-butter-chicken", "rest-spice-route", "Butter Chicken",
			"Tandoori chicken in a cashew-tomato cream sauce",
			15.50, intPtr(820), []string{"gluten_free"}, []string{"dairy", "tree_nut"}},
		{"item-garlic-naan", "rest-spice-route", "Garlic Naan",
			"Tandoor flatbread brushed with garlic butter",
			4.50, intPtr(290), []string{"vegetarian"}, []string{"wheat", "dairy"}},
		{"item-rogan-josh", "rest-spice-route", "Lamb Rogan Josh",
			"Kashmiri lamb curry finished with yogurt and whole spices",
			19.00, intPtr(760), []string{"gluten_free"}, []string{"dairy"}},
		{"item-saag-paneer", "rest-spice-route", "Saag Paneer",
			"House paneer in slow-cooked spinach with cumin and fenugreek",
			13.00, intPtr(540), []string{"vegetarian", "gluten_free"}, []string{"dairy"}},

		// The Harvest Table
		{"item-smash-burger", "rest-harvest-table", "Double Smash Burger",
			"Two smashed patties, american cheese, and special sauce on a sesame bun",
			14.00, intPtr(1100), nil, []string{"wheat", "dairy", "egg", "sesame"}},
		{"item-cobb-salad", "rest-harvest-table", "Grilled Chicken Cobb",
			"Romaine, grilled chicken, bacon, egg, avocado, and blue cheese",
			15.50, intPtr(650), []string{"gluten_free", "keto"}, []string{"egg", "dairy"}},
		{"item-buttermilk-pancakes", "rest-harvest-table", "Buttermilk Pancakes",
			"Stack of three with whipped butter and vermont maple syrup",
			10.50, intPtr(890), []string{"vegetarian"}, []string{"wheat", "dairy", "egg"}},
		{"item-ribeye-steak", "rest-harvest-table", "Dry-Aged Ribeye",
			"16oz ribeye basted in rosemary butter, charred broccolini",
			42.00, intPtr(950), []string{"keto", "gluten_free"}, []string{"dairy"}},
		{"item-beet-salad", "rest-harvest-table", "Roasted Beet Salad",
			"Golden beets, goat cheese, candied walnuts, and arugula",
			12.50, intPtr(430), []string{"vegetarian", "gluten_free"}, []string{"dairy", "tree_nut"}},

		// Olive & Grove
		{"item-falafel-wrap", "rest-olive-grove", "Falafel Wrap",
			"Crisp falafel, tahini, pickled turnip, and herbs in warm pita",
			10.00, intPtr(620), []string{"vegan"}, []string{"wheat", "sesame"}},
		{"item-shawarma-plate", "rest-olive-grove", "Chicken Shawarma Plate",
			"Spit-roasted chicken with saffron rice, sumac onion, and toum",
			14.50, intPtr(710), []string{"gluten_free"}, []string{"sesame"}},
		{"item-hummus-mezze", "rest-olive-grove", "Hummus Mezze",
			"Silky chickpea hummus with olive oil, za'atar, and crudites",
			8.50, intPtr(390), []string{"vegan", "gluten_free"}, []string{"sesame"}},
		{"item-grilled-octopus", "rest-olive-grove", "Grilled Octopus",
			"Charred octopus over gigante beans with lemon and oregano",
			24.00, intPtr(410), []string{"gluten_free"}, []string{"shellfish"}},
		{"item-greek-salad", "rest-olive-grove", "Greek Salad",
			"Tomato, cucumber, kalamata olives, and barrel-aged feta",
			11.00, intPtr(350), []string{"vegetarian", "gluten_free"}, []string{"dairy"}},

		// Saigon Garden
		{"item-pho-bo", "rest-saigon-garden", "Pho Bo",
			"Twelve-hour beef broth, rice noodles, brisket, and fresh herbs",
			13.00, intPtr(580), []string{"gluten_free"}, []string{"fish"}},
		{"item-banh-mi", "rest-saigon-garden", "Banh Mi Dac Biet",
			"House baguette with pate, cold cuts, pickled daikon, and mayo",
			9.50, intPtr(640), nil, []string{"wheat", "egg", "soy"}},
		{"item-goi-cuon", "rest-saigon-garden", "Goi Cuon Spring Rolls",
			"Shrimp and herb rice-paper rolls with peanut dipping sauce",
			7.00, intPtr(260), []string{"gluten_free"}, []string{"shellfish", "peanut", "fish"}},
		{"item-lemongrass-tofu", "rest-saigon-garden", "Lemongrass Tofu",
			"Crispy tofu caramelized with lemongrass and chili, steamed rice",
			12.50, intPtr(510), []string{"vegan", "gluten_free"}, []string{"soy"}},
		{"item-bun-cha", "rest-saigon-garden", "Bun Cha Ha Noi",
			"Grilled pork patties over vermicelli with nuoc cham",
			14.00, intPtr(670), nil, []string{"fish"}},
	}

	users := []struct {
		id          string
		username    string
		allergies   []Allergy
		preferences []DietaryPreference
	}{
		{
			id:       "user-demo-alice",
			username: "alice",
			allergies: []Allergy{
				{AllergenID: "peanut", Severity: "severe"},
				{AllergenID: "shellfish", Severity: "moderate"},
			},
			preferences: []DietaryPreference{
				{Preference: "gluten_free", IsStrict: false},
			},
		},
		{
			id:       "user-demo-bob",
			username: "bob",
			allergies: []Allergy{
				{AllergenID: "dairy", Severity: "mild"},
			},
			preferences: []DietaryPreference{
				{Preference: "vegan", IsStrict: true},
			},
		},
		{
			id:       "user-demo-carol",
			username: "carol",
			preferences: []DietaryPreference{
				{Preference: "keto", IsStrict: false},
			},
		},
	}

	for _, a := range allergens {
		if err := s.upsertAllergen(ctx, a.ID, a.Name); err != nil {
			return fmt.Errorf("failed to seed allergen %s: %w", a.ID, err)
		}
	}
	logging.Info().Int("count", len(allergens)).Msg("Seeded allergen vocabulary")

	for _, r := range restaurants {
		if err := s.upsertRestaurant(ctx, r.id, r.name, r.cuisine, r.placeID, r.address); err != nil {
			return fmt.Errorf("failed to seed restaurant %s: %w", r.name, err)
		}
	}
	logging.Info().Int("count", len(restaurants)).Msg("Seeded restaurants")

	for _, it := range items {
		if err := s.upsertMenuItem(ctx, it.id, it.restaurantID, it.name, it.description, it.price, it.calories); err != nil {
			return fmt.Errorf("failed to seed menu item %s: %w", it.name, err)
		}
		for _, allergenID := range it.allergens {
			if err := s.tagMenuItemAllergen(ctx, it.id, allergenID); err != nil {
				return fmt.Errorf("failed to tag allergen %s on %s: %w", allergenID, it.id, err)
			}
		}
		for _, tag := range it.dietTags {
			if err := s.tagMenuItemDiet(ctx, it.id, tag); err != nil {
				return fmt.Errorf("failed to tag diet %s on %s: %w", tag, it.id, err)
			}
		}
	}
	logging.Info().Int("count", len(items)).Msg("Seeded menu items")

	for _, u := range users {
		if err := s.upsertUser(ctx, u.id, u.username); err != nil {
			return fmt.Errorf("failed to seed user %s: %w", u.username, err)
		}
		for _, a := range u.allergies {
			if err := s.addUserAllergy(ctx, u.id, a.AllergenID, a.Severity); err != nil {
				return fmt.Errorf("failed to seed allergy %s for %s: %w", a.AllergenID, u.username, err)
			}
		}
		for _, p := range u.preferences {
			if err := s.addUserPreference(ctx, u.id, p.Preference, p.IsStrict); err != nil {
				return fmt.Errorf("failed to seed preference %s for %s: %w", p.Preference, u.username, err)
			}
		}
	}
	logging.Info().Int("count", len(users)).Msg("Seeded demo users")

	// Reference data changed; drop anything cached before the seed.
	s.invalidateCaches()

	logging.Info().
		Int("allergens", len(allergens)).
		Int("restaurants", len(restaurants)).
		Int("menu_items", len(items)).
		Int("users", len(users)).
		Msg("Demo catalog seeded successfully")

	return nil
}

// Upsert helpers shared by Seed and the package tests. The catalog is
// collaborator-owned; nothing outside seeding and tests writes through them.

func (s *Store) upsertAllergen(ctx context.Context, id, name string) error {
	_, err := s.conn.ExecContext(ctx,
		`INSERT OR REPLACE INTO allergens (id, name) VALUES (?, ?)`, id, name)
	return err
}

func (s *Store) upsertRestaurant(ctx context.Context, id, name, cuisine, placeID, address string) error {
	_, err := s.conn.ExecContext(ctx,
		`INSERT OR REPLACE INTO restaurants (id, name, cuisine, place_id, address) VALUES (?, ?, ?, ?, ?)`,
		id, name, cuisine, placeID, address)
	return err
}

func (s *Store) upsertMenuItem(ctx context.Context, id, restaurantID, name, description string, price float64, calories *int) error {
	_, err := s.conn.ExecContext(ctx,
		`INSERT OR REPLACE INTO menu_items (id, restaurant_id, name, description, price, calories) VALUES (?, ?, ?, ?, ?, ?)`,
		id, restaurantID, name, description, price, calories)
	return err
}

func (s *Store) tagMenuItemAllergen(ctx context.Context, itemID, allergenID string) error {
	_, err := s.conn.ExecContext(ctx,
		`INSERT OR REPLACE INTO menu_item_allergens (menu_item_id, allergen_id) VALUES (?, ?)`,
		itemID, allergenID)
	return err
}

func (s *Store) tagMenuItemDiet(ctx context.Context, itemID, dietTag string) error {
	_, err := s.conn.ExecContext(ctx,
		`INSERT OR REPLACE INTO menu_item_diet_tags (menu_item_id, diet_tag) VALUES (?, ?)`,
		itemID, dietTag)
	return err
}

func (s *Store) upsertUser(ctx context.Context, id, username string) error {
	_, err := s.conn.ExecContext(ctx,
		`INSERT OR REPLACE INTO users (id, username) VALUES (?, ?)`, id, username)
	return err
}

func (s *Store) addUserAllergy(ctx context.Context, userID, allergenID, severity string) error {
	_, err := s.conn.ExecContext(ctx,
		`INSERT OR REPLACE INTO user_allergies (user_id, allergen_id, severity) VALUES (?, ?, ?)`,
		userID, allergenID, severity)
	return err
}

func (s *Store) addUserPreference(ctx context.Context, userID, preference string, isStrict bool) error {
	_, err := s.conn.ExecContext(ctx,
		`INSERT OR REPLACE INTO user_dietary_preferences (user_id, preference, is_strict) VALUES (?, ?, ?)`,
		userID, preference, isStrict)
	return err
}

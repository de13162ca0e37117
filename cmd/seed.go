package cmd

import (
	domainRefdata "github.com/saharabot/sahara/domains/refdata"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the baseline reference data into the database",
	Long: `Seed inserts the registration steps, required documents, partner
services and referral contacts the bot answers with. Running it again is
safe, existing rows are left alone.`,
	Run: seedDatabase,
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func seedDatabase(_ *cobra.Command, _ []string) {
	if err := runSeed(db); err != nil {
		logrus.Fatalf("[SEED] failed: %v", err)
	}
	logrus.Info("[SEED] reference data loaded")
}

func runSeed(db *gorm.DB) error {
	services := []domainRefdata.Service{
		{ID: 1, Category: domainRefdata.CategoryFood, Organization: "World Food Programme", Description: "monthly food ration distribution", Location: "Distribution Centre, Zone 2"},
		{ID: 2, Category: domainRefdata.CategoryFood, Organization: "Community Kitchen Network", Description: "hot meals for new arrivals", Location: "Reception Centre"},
		{ID: 3, Category: domainRefdata.CategoryShelter, Organization: "Red Cross", Description: "transit shelter for registered families", Location: "Sector 3"},
		{ID: 4, Category: domainRefdata.CategoryShelter, Organization: "UNHCR Shelter Unit", Description: "emergency shelter kits", Location: "Zone 1 warehouse"},
		{ID: 5, Category: domainRefdata.CategoryHealth, Organization: "MSF", Description: "walk-in mobile clinic, no appointment needed", Location: "Camp health post"},
		{ID: 6, Category: domainRefdata.CategoryHealth, Organization: "District Health Office", Description: "vaccinations and maternal care", Location: "Main road clinic"},
	}

	contacts := []domainRefdata.Contact{
		{ID: 1, Type: domainRefdata.ContactEmergency, Entity: "Ambulance", Phone: "102", IsUrgent: true},
		{ID: 2, Type: domainRefdata.ContactEmergency, Entity: "Police", Phone: "100", IsUrgent: true},
		{ID: 3, Type: domainRefdata.ContactEmergency, Entity: "Protection Hotline", Phone: "+977 1 555 0147", Description: "24/7, interpreters available", IsUrgent: true},
		{ID: 4, Type: domainRefdata.ContactHospital, Entity: "District Hospital", Phone: "+977 1 555 0199", Description: "emergency ward open around the clock"},
		{ID: 5, Type: domainRefdata.ContactGeneral, Entity: "UNHCR Help Desk", Phone: "+977 1 555 0100", Email: "help@unhcr.example", Description: "general questions and case follow-up"},
	}

	steps := []domainRefdata.RegistrationStep{
		{ID: 1, StepNumber: 1, Title: "Visit the registration office", Description: "bring every family member who will be registered"},
		{ID: 2, StepNumber: 2, Title: "Complete the registration form", Description: "staff can fill it in with you if needed"},
		{ID: 3, StepNumber: 3, Title: "Attend the registration interview", Description: "you will be asked about your journey and family"},
		{ID: 4, StepNumber: 4, Title: "Collect your registration card", Description: "usually ready within two weeks"},
	}

	documents := []domainRefdata.RequiredDocument{
		{ID: 1, Name: "Identity document", Description: "passport, national ID or citizenship certificate", IsEssential: true},
		{ID: 2, Name: "Family photographs", Description: "passport-size, one per family member"},
		{ID: 3, Name: "Birth certificates for children", Description: "if available"},
		{ID: 4, Name: "Previous registration papers", Description: "from any earlier asylum procedure, if available"},
	}

	// DoNothing keeps rows an operator has edited since the last seed.
	onConflict := clause.OnConflict{DoNothing: true}

	if err := db.Clauses(onConflict).Create(&services).Error; err != nil {
		return err
	}
	if err := db.Clauses(onConflict).Create(&contacts).Error; err != nil {
		return err
	}
	if err := db.Clauses(onConflict).Create(&steps).Error; err != nil {
		return err
	}
	return db.Clauses(onConflict).Create(&documents).Error
}

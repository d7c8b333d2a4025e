package athlete

// ProfileURL is the public page for the fixture athlete.
const ProfileURL = "https://www.flowrestling.org/nextgen/people/11021385-jordan-burroughs?tab=home"

// Fixture returns the built-in catalog. Age, graduation and distance labels are
// literal strings; nothing is derived from the dates or coordinates.
func Fixture() Catalog {
	return Catalog{
		Primary: Profile{
			ID:          "0Y4KrP3a43fZbBiL",
			Name:        "Jordan Burroughs",
			Nickname:    "JB",
			Gender:      "Male",
			DOB:         "1988-07-08",
			AgeLabel:    "36 years",
			HSGradYear:  2006,
			GradLabel:   "20 years ago",
			Team:        "Sunkist Kids Wrestling Club",
			WeightClass: "74 kg",
			Location:    "Philadelphia, PA",
			LatLng:      "41.2033216, -77.1945247",
			URL:         ProfileURL,
		},
		Merged: []MergeCandidate{
			{
				ID:            "2Xk9mPqR7vNwYzA3",
				Name:          "J. Burroughs",
				Gender:        "Male",
				DOB:           "1988-07-08",
				AgeLabel:      "36 years",
				HSGradYear:    2006,
				GradLabel:     "20 years ago",
				Team:          "Nebraska Wrestling",
				WeightClass:   "163 lbs",
				Place:         Place{City: "Lincoln", State: "NE", Zip: "68508", Lat: 40.8258, Lng: -96.6852},
				DistanceLabel: "1.2 miles away",
				Record: &InternalRecord{
					ID:          "2Xk9mPqR7vNwYzA3",
					FirstName:   "J.",
					LastName:    "Burroughs",
					Gender:      "male",
					DOB:         "1988-07-08",
					HSGradYear:  2006,
					Team:        "Nebraska Wrestling",
					WeightClass: "163 lbs",
					Location:    RecordLocation{City: "Lincoln", State: "NE", Zip: "68508", Lat: 40.8258, Lng: -96.6852},
				},
			},
			{
				ID:            "7HnTqW4pL9sRvXm2",
				Name:          "Jordan E Burroughs",
				Nickname:      "JB",
				Gender:        "Male",
				DOB:           "1988-07-08",
				AgeLabel:      "36 years",
				HSGradYear:    2006,
				GradLabel:     "20 years ago",
				Team:          "USA Wrestling",
				WeightClass:   "74 kg",
				Place:         Place{City: "Colorado Springs", State: "CO", Zip: "80909", Lat: 38.8339, Lng: -104.8214},
				DistanceLabel: "463 miles away",
				Record: &InternalRecord{
					ID:            "7HnTqW4pL9sRvXm2",
					FirstName:     "Jordan",
					MiddleInitial: "E",
					LastName:      "Burroughs",
					Nickname:      stringPtr("JB"),
					Gender:        "male",
					DOB:           "1988-07-08",
					HSGradYear:    2006,
					Team:          "USA Wrestling",
					WeightClass:   "74 kg",
					Location:      RecordLocation{City: "Colorado Springs", State: "CO", Zip: "80909", Lat: 38.8339, Lng: -104.8214},
				},
			},
		},
		Prospect: MergeCandidate{
			ID:            "9QwErT5yU1iOpAs8",
			Name:          "Jordan Williams",
			Nickname:      "J-Will",
			Gender:        "Male",
			DOB:           "1995-03-22",
			AgeLabel:      "31 years",
			HSGradYear:    2013,
			GradLabel:     "13 years ago",
			Team:          "Iowa Wrestling",
			WeightClass:   "86 kg",
			Place:         Place{City: "Iowa City", State: "IA", Zip: "52240", Lat: 41.6611, Lng: -91.5302},
			DistanceLabel: "268 miles away",
		},
		EventSources: []EventSource{
			{
				ProfileID:   "0Y4KrP3a43fZbBiL",
				ProfileName: "Jordan Burroughs",
				IsCurrent:   true,
				Events: []Event{
					{ID: "e1", Name: "2024 Olympic Trials", Date: "2024-04-19", Result: "Gold", WeightClass: "74 kg"},
					{ID: "e2", Name: "2023 World Championships", Date: "2023-09-20", Result: "Gold", WeightClass: "74 kg"},
					{ID: "e3", Name: "2023 Pan American Games", Date: "2023-10-28", Result: "Gold", WeightClass: "74 kg"},
				},
			},
			{
				ProfileID:   "2Xk9mPqR7vNwYzA3",
				ProfileName: "J. Burroughs",
				Events: []Event{
					{ID: "e4", Name: "2022 Nebraska Open", Date: "2022-03-12", Result: "1st Place", WeightClass: "163 lbs"},
					{ID: "e5", Name: "2021 Big Ten Championships", Date: "2021-03-06", Result: "1st Place", WeightClass: "165 lbs"},
				},
			},
			{
				ProfileID:   "7HnTqW4pL9sRvXm2",
				ProfileName: "Jordan E Burroughs",
				Events: []Event{
					{ID: "e6", Name: "2020 US Open", Date: "2020-04-25", Result: "Gold", WeightClass: "74 kg"},
					{ID: "e7", Name: "2019 World Championships", Date: "2019-09-21", Result: "Bronze", WeightClass: "74 kg"},
					{ID: "e8", Name: "2018 World Cup", Date: "2018-04-07", Result: "Gold", WeightClass: "74 kg"},
				},
			},
		},
		LoadedEvent: LoadedEvent{
			Name:   "2024 NCAA Championships",
			Detail: "March 21-23, 2024 · Kansas City, MO",
			Participants: []Participant{
				{ID: "participant_8472", Name: "J. Burroughs", WeightClass: "74 kg", Placement: "1st Place"},
				{ID: "participant_8519", Name: "Marcus Thompson", WeightClass: "74 kg", Placement: "2nd Place"},
				{ID: "participant_8533", Name: "Tyler Rodriguez", WeightClass: "74 kg", Placement: "3rd Place"},
				{ID: "participant_8547", Name: "David Kim", WeightClass: "74 kg", Placement: "4th Place"},
				{ID: "participant_8561", Name: "Chris Martinez", WeightClass: "74 kg", Placement: "5th Place"},
				{ID: "participant_8578", Name: "Alex Johnson", WeightClass: "74 kg", Placement: "6th Place"},
			},
		},
	}
}

func stringPtr(s string) *string { return &s }

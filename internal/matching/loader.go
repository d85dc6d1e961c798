package matching

import (
	"encoding/json"
	"fmt"
	"os"
)

// LoadSpecialists reads the specialist roster from a JSON file.
func LoadSpecialists(path string) ([]Specialist, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("matching: read roster %s: %w", path, err)
	}
	var specialists []Specialist
	if err := json.Unmarshal(data, &specialists); err != nil {
		return nil, fmt.Errorf("matching: decode roster %s: %w", path, err)
	}
	return specialists, nil
}

// DefaultSpecialists is the built-in roster used when no roster file is
// configured.
func DefaultSpecialists() []Specialist {
	return []Specialist{
		{
			Name:         "Dr. Luca Bianchi",
			Email:        "luca.bianchi@mail.com",
			Phone:        "+39 345 1122334",
			Expertise:    "Anxiety and depression, panic attacks, stress management",
			Subspecialty: "Cognitive behavioral therapy",
			Address:      "Via Roma 25, Turin",
			Schedule:     "Mon-Wed 14:00-18:00; Sat 09:00-12:00",
			Modality:     "in-person",
		},
		{
			Name:         "Dr. Sofia Ricci",
			Email:        "sofia.ricci@mail.com",
			Phone:        "+39 333 9988776",
			Expertise:    "Trauma, PTSD, grief counseling",
			Subspecialty: "EMDR therapy",
			Address:      "Corso Vittorio Emanuele 102, Milan",
			Schedule:     "Tue-Thu 09:00-13:00; Fri 14:00-17:00",
			Modality:     "hybrid",
		},
		{
			Name:         "Dr. Marco Ferrari",
			Email:        "marco.ferrari@mail.com",
			Phone:        "+39 347 5566778",
			Expertise:    "Eating disorders, body image, adolescent psychology",
			Subspecialty: "Family-based treatment",
			Address:      "Via Garibaldi 8, Genoa",
			Schedule:     "Mon-Fri 10:00-14:00",
			Modality:     "in-person",
		},
		{
			Name:         "Dr. Elena Marino",
			Email:        "elena.marino@mail.com",
			Phone:        "+39 340 2233445",
			Expertise:    "Sleep disorders, insomnia, burnout, work-related stress",
			Subspecialty: "Mindfulness-based interventions",
			Address:      "Piazza Castello 14, Turin",
			Schedule:     "Wed-Fri 15:00-19:00; Sat 10:00-13:00",
			Modality:     "remote",
		},
	}
}

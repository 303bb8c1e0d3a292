package util

import (
	"fmt"
	"math/rand"
	"sync"
	"time"
)

var adjectives = []string{
	"Fast", "Slow", "Quick", "Speedy", "Trotting", "Weaving", "Waiving", "Gracious", "Healthy", "Happy", "Funny",
	"Red", "Blue", "Green", "Yellow", "Pink", "Teal", "Orange", "Purple", "Fuzzy", "Smiling", "Tall", "Grand",
	"Wild", "Flipping", "Clashing", "Swimming", "Flying", "Jumping", "Running", "Charging", "Bouncing", "Leaping",
}

var animals = []string{
	"Dog", "Cat", "Mouse", "Alligator", "Shark", "Hippo", "Giraffe", "Antelope", "Lion", "Tiger",
	"Bear", "Otter", "Dolphin", "Porcupine", "Gerbil", "Hedgehog", "Lizard", "Chipmunk", "Okapi", "Eagle",
	"Wolf", "Fox", "Armadillo", "Rhino", "Panda", "Chameleon", "Peacock", "Flamingo",
}

var (
	randomLock sync.Mutex
	random     = rand.New(rand.NewSource(time.Now().UnixNano())) // nolint:gosec
)

// GetRandomName returns a random guest name by combining an adjective with an animal
func GetRandomName() string {
	randomLock.Lock()
	defer randomLock.Unlock()

	adjectivesIndex := random.Intn(len(adjectives))
	animalsIndex := random.Intn(len(animals))

	return fmt.Sprintf("%s %s", adjectives[adjectivesIndex], animals[animalsIndex])
}

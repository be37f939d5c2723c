package service

import (
	"fmt"
	"math/rand"
)

// Password accounts don't arrive with a provider avatar, so signup assigns
// a random generated one. DiceBear renders a deterministic SVG for a given
// collection + seed, so the URL needs no storage beyond the string itself.
var (
	avatarCollections = []string{"adventurer-neutral", "fun-emoji", "icons", "identicon", "initials", "micah"}
	avatarSeeds       = []string{
		"Garfield", "Tinkerbell", "Annie", "Loki", "Cleo", "Angel", "Bob", "Mia",
		"Coco", "Gracie", "Bear", "Bella", "Abby", "Harley", "Cali", "Leo",
		"Luna", "Jack", "Felix", "Kiki",
	}
)

// defaultAvatar returns a random DiceBear avatar URL for a new password
// account. Google accounts keep their provider-issued picture instead.
func defaultAvatar() string {
	collection := avatarCollections[rand.Intn(len(avatarCollections))]
	seed := avatarSeeds[rand.Intn(len(avatarSeeds))]
	return fmt.Sprintf("https://api.dicebear.com/6.x/%s/svg?seed=%s", collection, seed)
}

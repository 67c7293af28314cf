// Package cache fournit un cache mémoire à expiration pour les agrégats
// coûteux (tableau de bord). Pas d'éviction par taille: le jeu de clés
// est petit et borné par les routes qui l'utilisent.
package cache

import (
	"sync"
	"time"
)

type entree struct {
	valeur     interface{}
	expiration time.Time
}

type Cache struct {
	mu      sync.RWMutex
	entrees map[string]entree
	ttl     time.Duration
}

func New(ttl time.Duration) *Cache {
	return &Cache{
		entrees: make(map[string]entree),
		ttl:     ttl,
	}
}

// Get retourne la valeur si elle est présente et non expirée.
func (c *Cache) Get(cle string) (interface{}, bool) {
	c.mu.RLock()
	e, ok := c.entrees[cle]
	c.mu.RUnlock()
	if !ok || time.Now().After(e.expiration) {
		return nil, false
	}
	return e.valeur, true
}

// Set enregistre la valeur pour la durée de vie du cache.
func (c *Cache) Set(cle string, valeur interface{}) {
	c.mu.Lock()
	c.entrees[cle] = entree{
		valeur:     valeur,
		expiration: time.Now().Add(c.ttl),
	}
	c.mu.Unlock()
}

// Invalider supprime une clé.
func (c *Cache) Invalider(cle string) {
	c.mu.Lock()
	delete(c.entrees, cle)
	c.mu.Unlock()
}

// Vider supprime toutes les entrées.
func (c *Cache) Vider() {
	c.mu.Lock()
	c.entrees = make(map[string]entree)
	c.mu.Unlock()
}

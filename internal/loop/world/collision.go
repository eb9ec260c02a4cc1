package world

// detectCollisions raises death notifications for overlapping pairs and marks
// spent projectiles for removal. Rules in precedence order:
//
//  1. enemy projectile and player: player dies, projectile removed
//  2. enemy ship and player: both die
//  3. player projectile and enemy ship: enemy dies, projectile removed
//
// Each enemy dies at most once per tick and each projectile hits at most one ship.
func (w *World) detectCollisions() {
	killed := make(map[int]struct{})

	if p := w.player; p != nil {
		hitbox := p.Hitbox()
		dead := false

		for _, proj := range w.projectiles {
			if proj.Player || !proj.Hitbox().Overlaps(hitbox) {
				continue
			}
			w.mail.playerDeath.Send(p.ID)
			w.toRemove[proj] = struct{}{}
			dead = true
			break
		}

		for i, e := range w.enemies {
			if !e.Hitbox().Overlaps(hitbox) {
				continue
			}
			if !dead {
				w.mail.playerDeath.Send(p.ID)
				dead = true
			}
			w.mail.enemyDeath.Send(e.ID)
			killed[i] = struct{}{}
		}
	}

	w.grid.Clear()
	for i, e := range w.enemies {
		if _, ok := killed[i]; !ok {
			w.grid.Insert(e.Pos, i)
		}
	}

	for _, proj := range w.projectiles {
		if !proj.Player {
			continue
		}
		if _, spent := w.toRemove[proj]; spent {
			continue
		}
		hitbox := proj.Hitbox()
		w.grid.QueryAround(proj.Pos, func(i int) bool {
			if _, ok := killed[i]; ok {
				return false
			}
			e := w.enemies[i]
			if !e.Hitbox().Overlaps(hitbox) {
				return false
			}
			w.mail.enemyDeath.Send(e.ID)
			w.toRemove[proj] = struct{}{}
			killed[i] = struct{}{}
			return true
		})
	}

	w.removeSpent()
}

// removeSpent drops projectiles marked in toRemove.
func (w *World) removeSpent() {
	if len(w.toRemove) == 0 {
		return
	}
	kept := w.projectiles[:0]
	for _, p := range w.projectiles {
		if _, ok := w.toRemove[p]; !ok {
			kept = append(kept, p)
		}
	}
	clear(w.projectiles[len(kept):])
	w.projectiles = kept
	clear(w.toRemove)
}

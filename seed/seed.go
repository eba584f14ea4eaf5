// Package seed fills an empty database with a demo user and the activity
// catalog.
package seed

import (
	"context"
	"fmt"

	"github.com/escapade-app/escapade/store"
	"github.com/escapade-app/escapade/users"
	"go.uber.org/zap"
)

type Seeder struct {
	store store.Store
	users *users.Service
	log   *zap.SugaredLogger
}

func New(s store.Store, u *users.Service, log *zap.SugaredLogger) *Seeder {
	return &Seeder{
		store: s,
		users: u,
		log:   log,
	}
}

// Run seeds users and activities. It refuses to touch a non-empty database.
func (s *Seeder) Run(ctx context.Context) error {
	count, err := s.store.CountUsers(ctx)
	if err != nil {
		return err
	}

	if count > 0 {
		return fmt.Errorf("database already has %v users, refusing to seed", count)
	}

	owner, err := s.users.Create(ctx, "demo@escapade.app", "Demo", "escapade")
	if err != nil {
		return err
	}

	for _, activity := range catalog {
		activity.OwnerID = owner.ID.Hex()
		if _, err := s.store.CreateActivity(ctx, &activity); err != nil {
			return fmt.Errorf("failed to seed activity %q: %w", activity.Name, err)
		}
	}

	s.log.Infow("seeded database", "users", 1, "activities", len(catalog))
	return nil
}

var catalog = []store.Activity{
	{
		Name:        "Randonnée dans les Alpes",
		City:        "Chamonix",
		Price:       80,
		Description: "Parcourez les sentiers alpins avec vue sur le Mont-Blanc. Randonnée guidée adaptée à tous les niveaux avec pause pique-nique en altitude.",
	},
	{
		Name:        "SPA Saint-Malo",
		City:        "Saint-Malo",
		Price:       120,
		Description: "Détendez-vous face à la mer dans un spa avec piscine chauffée, hammam et soins aux algues marines. Accès journée inclus.",
	},
	{
		Name:        "Yoga à Paris",
		City:        "Paris",
		Price:       25,
		Description: "Séance de yoga en plein air dans les jardins du Luxembourg. Tous niveaux bienvenus, tapis fourni.",
	},
	{
		Name:        "Visite du Louvre",
		City:        "Paris",
		Price:       50,
		Description: "Visite guidée des chefs-d'oeuvre du Louvre : Joconde, Vénus de Milo et Victoire de Samothrace. Billet coupe-file inclus.",
	},
	{
		Name:        "Visite du Château de Versailles",
		City:        "Versailles",
		Price:       50,
		Description: "Découvrez la Galerie des Glaces et les jardins de Versailles avec un guide expert. Transport depuis Paris en option.",
	},
	{
		Name:        "Cours de surf à Biarritz",
		City:        "Biarritz",
		Price:       65,
		Description: "Initiez-vous au surf sur les vagues de la côte basque avec des moniteurs diplômés. Matériel fourni, tous niveaux acceptés.",
	},
	{
		Name:        "Dégustation de vins à Bordeaux",
		City:        "Bordeaux",
		Price:       95,
		Description: "Parcourez les vignobles bordelais et dégustez des grands crus dans des domaines prestigieux. Transport inclus.",
	},
	{
		Name:        "Kayak dans les Calanques",
		City:        "Marseille",
		Price:       55,
		Description: "Explorez les calanques de Marseille en kayak de mer. Balade guidée avec arrêts baignade dans des criques secrètes.",
	},
	{
		Name:        "Vol en montgolfière en Dordogne",
		City:        "Sarlat",
		Price:       220,
		Description: "Survolez les châteaux et vallées du Périgord au lever du soleil. Une expérience inoubliable avec petit-déjeuner inclus.",
	},
	{
		Name:        "Cours de cuisine lyonnaise",
		City:        "Lyon",
		Price:       85,
		Description: "Apprenez à préparer des spécialités lyonnaises avec un chef étoilé. Dégustation de vos créations en fin de cours.",
	},
	{
		Name:        "Plongée sous-marine à Nice",
		City:        "Nice",
		Price:       110,
		Description: "Découvrez les fonds marins de la Méditerranée avec un baptême de plongée encadré par des professionnels.",
	},
	{
		Name:        "Escalade à Fontainebleau",
		City:        "Fontainebleau",
		Price:       40,
		Description: "Session de bloc en forêt de Fontainebleau avec un guide. Idéal pour débutants et grimpeurs confirmés.",
	},
	{
		Name:        "Balade à cheval en Camargue",
		City:        "Arles",
		Price:       75,
		Description: "Découvrez les paysages sauvages de Camargue à cheval. Rencontre avec les taureaux et flamants roses.",
	},
	{
		Name:        "Atelier poterie à Vallauris",
		City:        "Vallauris",
		Price:       60,
		Description: "Créez votre propre pièce en céramique dans la ville de Picasso. Initiation au tournage et à la décoration.",
	},
	{
		Name:        "Parapente au-dessus du Lac d'Annecy",
		City:        "Annecy",
		Price:       95,
		Description: "Vol en parapente biplace avec vue imprenable sur le lac et les montagnes. Photos et vidéos incluses.",
	},
	{
		Name:        "Visite guidée du Vieux Lyon",
		City:        "Lyon",
		Price:       20,
		Description: "Parcourez les traboules et les ruelles médiévales du Vieux Lyon avec un guide passionné d'histoire.",
	},
	{
		Name:        "Croisière sur la Loire",
		City:        "Tours",
		Price:       45,
		Description: "Naviguez sur la Loire en bateau traditionnel et admirez les châteaux depuis le fleuve. Commentaires historiques inclus.",
	},
	{
		Name:        "Canyoning dans les Pyrénées",
		City:        "Luchon",
		Price:       70,
		Description: "Descente de canyon avec toboggans naturels, sauts et rappels. Encadrement professionnel et matériel fourni.",
	},
	{
		Name:        "Atelier parfum à Grasse",
		City:        "Grasse",
		Price:       90,
		Description: "Composez votre propre parfum dans la capitale mondiale de la parfumerie. Repartez avec votre création.",
	},
	{
		Name:        "VTT dans le Massif des Vosges",
		City:        "Gérardmer",
		Price:       35,
		Description: "Parcours VTT adaptés à tous les niveaux dans les sentiers vosgiens. Location de vélo incluse.",
	},
	{
		Name:        "Visite des grottes de Lascaux",
		City:        "Montignac",
		Price:       22,
		Description: "Explorez la réplique exacte de la grotte préhistorique et ses peintures rupestres vieilles de 20 000 ans.",
	},
	{
		Name:        "Stage de voile aux Glénans",
		City:        "Concarneau",
		Price:       150,
		Description: "Journée d'initiation à la voile avec l'école des Glénans. Théorie et pratique en mer.",
	},
	{
		Name:        "Rafting sur la Durance",
		City:        "Briançon",
		Price:       60,
		Description: "Descente en rafting sur les rapides de la Durance. Sensations fortes garanties avec encadrement sécurisé.",
	},
	{
		Name:        "Accrobranche en forêt de Brocéliande",
		City:        "Paimpont",
		Price:       28,
		Description: "Parcours acrobatiques dans les arbres de la légendaire forêt de Brocéliande. Tyroliennes et ponts de singe.",
	},
	{
		Name:        "Spectacle au Puy du Fou",
		City:        "Les Epesses",
		Price:       45,
		Description: "Journée au parc du Puy du Fou avec ses spectacles grandioses retraçant l'histoire de France.",
	},
	{
		Name:        "Cours de pâtisserie à Paris",
		City:        "Paris",
		Price:       110,
		Description: "Apprenez à réaliser macarons et éclairs avec un maître pâtissier. Dégustation et recettes à emporter.",
	},
	{
		Name:        "Safari photo en Baie de Somme",
		City:        "Saint-Valéry-sur-Somme",
		Price:       40,
		Description: "Observez les phoques et oiseaux migrateurs en baie de Somme avec un guide naturaliste.",
	},
	{
		Name:        "Ski de randonnée à La Clusaz",
		City:        "La Clusaz",
		Price:       85,
		Description: "Sortie ski de randonnée avec un guide de haute montagne. Itinéraire adapté à votre niveau.",
	},
}

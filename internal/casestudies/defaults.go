package casestudies

const (
	unsplashAutomation = "https://images.unsplash.com/photo-1729184648234-7650c1484905?crop=entropy&cs=tinysrgb&fit=max&fm=jpg&ixid=M3w3Nzg4Nzd8MHwxfHNlYXJjaHwxfHxidXNpbmVzcyUyMGF1dG9tYXRpb24lMjBkYXNoYm9hcmR8ZW58MXx8fHwxNzU5NTQ1NTYyfDA&ixlib=rb-4.1.0&q=80&w=1080"
	unsplashAnalytics  = "https://images.unsplash.com/photo-1551288049-bebda4e38f71?crop=entropy&cs=tinysrgb&fit=max&fm=jpg&ixid=M3w3Nzg4Nzd8MHwxfHNlYXJjaHwxfHxhbmFseXRpY3MlMjBkYXNoYm9hcmQlMjBwcm9kdWN0fGVufDF8fHx8MTc1OTU0NTU2M3ww&ixlib=rb-4.1.0&q=80&w=1080"
	unsplashAI         = "https://images.unsplash.com/photo-1745674684539-d90293d659a9?crop=entropy&cs=tinysrgb&fit=max&fm=jpg&ixid=M3w3Nzg4Nzd8MHwxfHNlYXJjaHwxfHxBSSUyMGFydGlmaWNpYWwlMjBpbnRlbGxpZ2VuY2V8ZW58MXx8fHwxNzU5NTQ1NTYyfDA&ixlib=rb-4.1.0&q=80&w=1080"
	unsplashCalculator = "https://images.unsplash.com/photo-1711344397160-b23d5deaa012?crop=entropy&cs=tinysrgb&fit=max&fm=jpg&ixid=M3w3Nzg4Nzd8MHwxfHNlYXJjaHwxfHxjYWxjdWxhdG9yJTIwZGFzaGJvYXJkJTIwaW50ZXJmYWNlfGVufDF8fHx8MTc1OTU0NTU1OXww&ixlib=rb-4.1.0&q=80&w=1080"
	unsplashTelegram   = "https://images.unsplash.com/photo-1644926054948-8c1155eeb0e1?crop=entropy&cs=tinysrgb&fit=max&fm=jpg&ixid=M3w3Nzg4Nzd8MHwxfHNlYXJjaHwxfHx0ZWxlZ3JhbSUyMGJvdCUyMGludGVyZmFjZXxlbnwxfHx8fDE3NTk1NDU1NTl8MA&ixlib=rb-4.1.0&q=80&w=1080"
	repoImages         = "https://raw.githubusercontent.com/vehvsa/landing/refs/heads/main/"
)

// DefaultCatalog returns a fresh copy of the seed catalog installed on first
// run and whenever the persisted snapshot is missing or unreadable.
func DefaultCatalog() []CaseStudy {
	items := []CaseStudy{
		{
			ID:                "telegram-bot",
			Title:             "Telegram Payment Bot",
			Description:       "Unified payment management in Telegram with Stripe, PayPal, and TBank integration.",
			DescriptionRu:     "Единое управление платежами в Telegram с интеграцией Stripe, PayPal и TBank.",
			Icon:              ResolveIcon("MessageSquare"),
			Image:             repoImages + "TGpay.png",
			Technologies:      []string{"Stripe API", "PayPal SDK", "TBank API", "Telegram Bot API", "C# (.NET Core)", "ASP.NET"},
			FullDescription:   "A comprehensive payment management solution integrated directly into Telegram, enabling businesses to handle multiple payment processors from a single interface. The bot automates payment processing, handles webhooks, and provides real-time transaction monitoring.",
			FullDescriptionRu: "Комплексное решение для управления платежами, интегрированное прямо в Telegram, позволяющее компаниям обрабатывать множественные платёжные системы из единого интерфейса. Бот автоматизирует обработку платежей, обрабатывает вебхуки и обеспечивает мониторинг транзакций в реальном времени.",
			UniqueFeatures: []string{
				"Everything in one place - unified dashboard",
				"Flexible setup with custom payment flows",
				"Multi-provider support (Stripe, PayPal, TBank)",
				"Real-time transaction monitoring",
			},
			UniqueFeaturesRu: []string{
				"Всё в одном месте - единая панель управления",
				"Гибкая настройка с пользовательскими потоками платежей",
				"Поддержка нескольких провайдеров (Stripe, PayPal, TBank)",
				"Мониторинг транзакций в реальном времени",
			},
			KeyBenefits: []string{
				"Manager notifications for all transactions",
				"Complete interface customization",
				"Significant time-saving for financial operations",
				"Reduced payment processing errors",
			},
			KeyBenefitsRu: []string{
				"Уведомления менеджеров обо всех транзакциях",
				"Полная настройка интерфейса",
				"Значительная экономия времени в финансовых операциях",
				"Снижение ошибок в обработке платежей",
			},
			AdditionalImages: []string{repoImages + "TGpay.png", unsplashCalculator},
			Category:         "Automation",
			Industry:         "FinTech",
			Timeframe:        "6 weeks",
			Result:           "85% reduction in payment processing time",
			ShowOnHomepage:   true,
		},
		{
			ID:                "bench-tournaments",
			Title:             "BenchTournaments",
			Description:       "Esports tournament automation platform with team registration, statistics, and prize distribution.",
			DescriptionRu:     "Платформа автоматизации киберспортивных турниров с регистрацией команд, статистикой и распределением призов.",
			Icon:              ResolveIcon("Trophy"),
			Image:             repoImages + "BenchTournaments.png",
			Technologies:      []string{"Python", "Django", "MySQL", "Telegram Bot", "Discord Bot", "Bootstrap", "Linux VPS"},
			FullDescription:   "A complete esports tournament management platform that automates the entire tournament lifecycle from team registration to prize distribution. The system handles player statistics, bracket generation, notifications, and automated payments.",
			FullDescriptionRu: "Полная платформа управления киберспортивными турнирами, которая автоматизирует весь жизненный цикл турнира от регистрации команд до распределения призов. Система обрабатывает статистику игроков, генерацию сеток, уведомления и автоматические выплаты.",
			UniqueFeatures: []string{
				"Full tournament automation from start to finish",
				"Automated bracket generation and management",
				"Real-time statistics tracking",
				"Multi-platform notifications (Telegram + Discord)",
			},
			UniqueFeaturesRu: []string{
				"Полная автоматизация турниров от начала до конца",
				"Автоматическая генерация и управление сетками",
				"Отслеживание статистики в реальном времени",
				"Многоплатформенные уведомления (Telegram + Discord)",
			},
			KeyBenefits: []string{
				"80-90% time savings for tournament organizers",
				"Error-free automated prize distribution",
				"95% participant satisfaction rate",
				"Streamlined registration and check-in process",
			},
			KeyBenefitsRu: []string{
				"80-90% экономия времени для организаторов турниров",
				"Безошибочное автоматическое распределение призов",
				"95% удовлетворённость участников",
				"Упрощённый процесс регистрации и поступления",
			},
			AdditionalImages: []string{repoImages + "BenchTournaments.png", unsplashAnalytics},
			Category:         "Web Development",
			Industry:         "Gaming & Esports",
			Timeframe:        "12 weeks",
			Result:           "90% automation of tournament processes",
			ShowOnHomepage:   true,
		},
		{
			ID:                "price-calculator",
			Title:             "Website Price Calculator",
			Description:       "Online calculator with automated pricing and sales integration features.",
			DescriptionRu:     "Онлайн-калькулятор с автоматизированным ценообразованием и интеграцией с продажами.",
			Icon:              ResolveIcon("Calculator"),
			Image:             repoImages + "Webprice.png",
			Technologies:      []string{"Bolt AI", "JavaScript", "React", "API Integration", "Responsive Design"},
			FullDescription:   "An intelligent pricing calculator that integrates seamlessly with websites to provide automated pricing for complex services. Uses AI to adapt pricing based on multiple variables and client requirements.",
			FullDescriptionRu: "Интеллектуальный калькулятор цен, который бесшовно интегрируется с веб-сайтами для автоматического ценообразования сложных услуг. Использует ИИ для адаптации цен на основе множественных переменных и требований клиентов.",
			UniqueFeatures: []string{
				"Seamless website integration",
				"AI-powered pricing optimization",
				"Easy configuration for sales teams",
				"Dynamic pricing based on multiple parameters",
			},
			UniqueFeaturesRu: []string{
				"Бесшовная интеграция с веб-сайтом",
				"ИИ-оптимизация ценообразования",
				"Простая настройка для отделов продаж",
				"Динамическое ценообразование на основе множественных параметров",
			},
			KeyBenefits: []string{
				"Lightning-fast calculations for prospects",
				"Improved conversion rates",
				"Simplified client communication process",
				"Reduced sales cycle time",
			},
			KeyBenefitsRu: []string{
				"Молниеносные расчёты для потенциальных клиентов",
				"Улучшенные показатели конверсии",
				"Упрощённый процесс коммуникации с клиентами",
				"Сокращённое время цикла продаж",
			},
			AdditionalImages: []string{repoImages + "Webprice.png", unsplashAutomation},
			Category:         "AI Solutions",
			Industry:         "Sales & Marketing",
			Timeframe:        "4 weeks",
			Result:           "45% increase in conversion rates",
			ShowOnHomepage:   true,
		},
		{
			ID:                "apg-ecosystem",
			Title:             "APG Eco System",
			Description:       "Business process automation platform reducing approval times from 35 to 5 days.",
			DescriptionRu:     "Платформа автоматизации бизнес-процессов, сокращающая время согласования с 35 до 5 дней.",
			Icon:              ResolveIcon("Cog"),
			Image:             unsplashAutomation,
			Technologies:      []string{"Python", "Django", "MySQL", "Telegram Bot", "Google Sheets API", "Bootstrap", "RESTful APIs"},
			FullDescription:   "A comprehensive business process automation platform that streamlines data collection, report verification, content publishing, and payroll management. The system dramatically reduces manual work and approval bottlenecks.",
			FullDescriptionRu: "Комплексная платформа автоматизации бизнес-процессов, которая оптимизирует сбор данных, проверку отчётов, публикацию контента и управление заработной платой. Система кардинально сокращает ручную работу и узкие места в согласовании.",
			UniqueFeatures: []string{
				"Reduces approval time from 35 to 5 days",
				"Automated routine process handling",
				"Google Sheets integration for data management",
				"Multi-departmental workflow automation",
			},
			UniqueFeaturesRu: []string{
				"Сокращает время согласования с 35 до 5 дней",
				"Автоматическая обработка рутинных процессов",
				"Интеграция с Google Sheets для управления данными",
				"Многоотдельная автоматизация рабочих процессов",
			},
			KeyBenefits: []string{
				"Massive resource savings across departments",
				"Higher administrator motivation through automation",
				"Faster department collaboration and workflows",
				"Eliminated manual data entry errors",
			},
			KeyBenefitsRu: []string{
				"Массивная экономия ресурсов по всем отделам",
				"Повышенная мотивация администраторов через автоматизацию",
				"Более быстрое сотрудничество отделов и рабочие процессы",
				"Устранены ошибки ручного ввода данных",
			},
			AdditionalImages: []string{unsplashAutomation, unsplashAnalytics},
			Category:         "Automation",
			Industry:         "Enterprise",
			Timeframe:        "16 weeks",
			Result:           "700% faster approval processes",
			ShowOnHomepage:   true,
		},
		{
			ID:                "ai-agents",
			Title:             "AI Agents for Business",
			Description:       "HR screening and chat moderation automation with 90%+ automation rate.",
			DescriptionRu:     "Автоматизация HR-скрининга и модерации чатов с уровнем автоматизации 90%+.",
			Icon:              ResolveIcon("Brain"),
			Image:             unsplashAI,
			Technologies:      []string{"Python", "NLP (spaCy, transformers)", "Telegram API", "Vector Database", "ai.io.net", "Machine Learning"},
			FullDescription:   "Advanced AI agents that handle chat moderation, automated HR screening, and hot topic analytics without human intervention. The system uses natural language processing and machine learning to make intelligent decisions.",
			FullDescriptionRu: "Продвинутые ИИ-агенты, которые обрабатывают модерацию чатов, автоматизированный HR-скрининг и аналитику горячих тем без вмешательства человека. Система использует обработку естественного языка и машинное обучение для принятия интеллектуальных решений.",
			UniqueFeatures: []string{
				"AI handles moderation without human intervention",
				"Automated HR candidate screening",
				"Hot topic analytics and trend detection",
				"Self-learning and improving algorithms",
			},
			UniqueFeaturesRu: []string{
				"ИИ обрабатывает модерацию без вмешательства человека",
				"Автоматизированный скрининг HR-кандидатов",
				"Аналитика горячих тем и обнаружение трендов",
				"Самообучающиеся и совершенствующиеся алгоритмы",
			},
			KeyBenefits: []string{
				"90%+ automation rate for routine tasks",
				"HR time reduced from 20 to 3 hours per week",
				"65% increase in participant activity",
				"Consistent and unbiased decision making",
			},
			KeyBenefitsRu: []string{
				"90%+ уровень автоматизации для рутинных задач",
				"HR время сокращено с 20 до 3 часов в неделю",
				"65% увеличение активности участников",
				"Последовательное и беспристрастное принятие решений",
			},
			AdditionalImages: []string{unsplashAI, unsplashTelegram},
			Category:         "AI Solutions",
			Industry:         "HR & Recruitment",
			Timeframe:        "10 weeks",
			Result:           "90%+ task automation achieved",
			ShowOnHomepage:   true,
		},
		{
			ID:                "product-dashboard",
			Title:             "Product Dashboard",
			Description:       "Centralized analytics dashboard for courses and student data with flexible filtering.",
			DescriptionRu:     "Централизованная аналитическая панель для курсов и данных студентов с гибкой фильтрацией.",
			Icon:              ResolveIcon("BarChart"),
			Image:             repoImages + "product.png",
			Technologies:      []string{"Flask", "Python", "SQLite", "Chart.js", "RESTful APIs", "Data Visualization"},
			FullDescription:   "A comprehensive analytics dashboard that provides centralized course and student analytics with flexible interface designed specifically for business analysts. Features advanced filtering and data management capabilities.",
			FullDescriptionRu: "Комплексная аналитическая панель, которая предоставляет централизованную аналитику курсов и студентов с гибким интерфейсом, специально разработанным для бизнес-аналитиков. Включает продвинутые возможности фильтрации и управления данными.",
			UniqueFeatures: []string{
				"Flexible interface designed for analysts",
				"Easy data management and export",
				"Advanced filtering and search capabilities",
				"Real-time data synchronization",
			},
			UniqueFeaturesRu: []string{
				"Гибкий интерфейс, разработанный для аналитиков",
				"Простое управление данными и экспорт",
				"Продвинутые возможности фильтрации и поиска",
				"Синхронизация данных в реальном времени",
			},
			KeyBenefits: []string{
				"Transparent analytics across all metrics",
				"Extensive filtering options for deep insights",
				"Faster analyst workflow and productivity",
				"Improved decision-making with clear data visualization",
			},
			KeyBenefitsRu: []string{
				"Прозрачная аналитика по всем метрикам",
				"Обширные возможности фильтрации для глубокого анализа",
				"Более быстрый рабочий процесс аналитиков и продуктивность",
				"Улучшенное принятие решений с ясной визуализацией данных",
			},
			AdditionalImages: []string{repoImages + "product.png", unsplashAutomation},
			Category:         "Analytics",
			Industry:         "Education",
			Timeframe:        "8 weeks",
			Result:           "60% faster data analysis workflows",
			ShowOnHomepage:   true,
		},
	}
	return items
}
